package hue

import (
	"context"
	"fmt"

	"github.com/amimof/huego"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/huesence/internal/models"
)

type GroupService struct {
	logger *log.Logger
	bridge *huego.Bridge
}

func NewGroupService(logger *log.Logger, bridge *huego.Bridge) *GroupService {
	return &GroupService{logger: logger, bridge: bridge}
}

func (g *GroupService) Host() string {
	return g.bridge.Host
}

func (g *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := g.bridge.GetGroupsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading groups from hue bridge: %w", err)
	}

	return lo.Map(groups, func(group huego.Group, _ int) models.Group {
		return models.Group{
			ID:   group.ID,
			Name: group.Name,
			On:   group.State != nil && group.State.On,
		}
	}), nil
}

func (g *GroupService) SaveGroup(ctx context.Context, group models.Group) error {
	g.logger.Debug("GroupService.SaveGroup", "group", group.Name, "on", group.On)

	_, err := g.bridge.SetGroupStateContext(ctx, group.ID, huego.State{On: group.On})
	if err != nil {
		return fmt.Errorf("error saving group (%s): %w", group.Name, err)
	}
	return nil
}
