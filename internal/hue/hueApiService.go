package hue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amimof/huego"
	"github.com/charmbracelet/log"
	"github.com/wheelibin/huesence/internal/constants"
)

// ErrLinkNotPressed is returned by CreateUser until the bridge's link button has been pressed.
var ErrLinkNotPressed = errors.New("link button not pressed")

// HueAPIService talks to bridges through the v1 api. It holds no connection state,
// every call names the host it is aimed at.
type HueAPIService struct {
	logger *log.Logger
}

func NewHueAPIService(logger *log.Logger) *HueAPIService {
	return &HueAPIService{logger}
}

// Ping reads the bridge's public config to check the host is a reachable bridge.
func (h *HueAPIService) Ping(ctx context.Context, host string) error {
	cfg, err := huego.New(host, "").GetConfigContext(ctx)
	if err != nil {
		return fmt.Errorf("error pinging bridge (%s): %w", host, err)
	}
	h.logger.Debug("HueAPIService.Ping", "host", host, "name", cfg.Name, "bridgeId", cfg.BridgeID)
	return nil
}

// Authenticate checks a stored username is still accepted by the bridge.
func (h *HueAPIService) Authenticate(ctx context.Context, host string, username string) error {
	if _, err := huego.New(host, username).GetGroupsContext(ctx); err != nil {
		return fmt.Errorf("error verifying credential on bridge (%s): %w", host, err)
	}
	return nil
}

// CreateUser registers a new username, the link button must have been pressed first.
func (h *HueAPIService) CreateUser(ctx context.Context, host string, deviceType string) (string, error) {
	username, err := huego.New(host, "").CreateUserContext(ctx, deviceType)
	if err != nil {
		if isLinkNotPressed(err) {
			return "", fmt.Errorf("creating user on bridge (%s): %w", host, ErrLinkNotPressed)
		}
		return "", fmt.Errorf("error creating user on bridge (%s): %w", host, err)
	}
	h.logger.Info("Registered with bridge", "host", host)
	return username, nil
}

// Groups returns a group service bound to an authenticated session.
func (h *HueAPIService) Groups(host string, username string) *GroupService {
	return NewGroupService(h.logger, huego.New(host, username))
}

func isLinkNotPressed(err error) bool {
	var apiErr *huego.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == constants.HueErrorLinkButtonNotPressed
	}
	return strings.Contains(strings.ToLower(err.Error()), "link button not pressed")
}
