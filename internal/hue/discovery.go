package hue

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amimof/huego"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

const ssdpMulticastAddr = "239.255.255.250:1900"
const defaultSSDPTimeout = 3 * time.Second

// PortalDiscoverer asks the Hue discovery portal (N-UPnP) for bridges on this network.
type PortalDiscoverer struct {
	logger *log.Logger
}

func NewPortalDiscoverer(logger *log.Logger) *PortalDiscoverer {
	return &PortalDiscoverer{logger: logger}
}

func (d *PortalDiscoverer) Name() string { return "portal" }

func (d *PortalDiscoverer) Discover(ctx context.Context) ([]string, error) {
	bridges, err := huego.DiscoverAllContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("portal discovery failed: %w", err)
	}
	hosts := lo.FilterMap(bridges, func(b huego.Bridge, _ int) (string, bool) {
		return b.Host, b.Host != ""
	})
	d.logger.Debug("PortalDiscoverer.Discover", "hosts", hosts)
	return hosts, nil
}

// StaticDiscoverer returns the hosts from config.
type StaticDiscoverer struct {
	hosts []string
}

func NewStaticDiscoverer(hosts []string) *StaticDiscoverer {
	return &StaticDiscoverer{hosts: hosts}
}

func (d *StaticDiscoverer) Name() string { return "static" }

func (d *StaticDiscoverer) Discover(_ context.Context) ([]string, error) {
	return lo.Without(d.hosts, ""), nil
}

// SSDPDiscoverer broadcasts an M-SEARCH and collects replies from hue bridges.
type SSDPDiscoverer struct {
	logger  *log.Logger
	addr    string
	timeout time.Duration
}

func NewSSDPDiscoverer(logger *log.Logger) *SSDPDiscoverer {
	return &SSDPDiscoverer{logger: logger, addr: ssdpMulticastAddr, timeout: defaultSSDPTimeout}
}

// NewSSDPDiscovererWithAddr searches a specific address instead of the multicast group.
func NewSSDPDiscovererWithAddr(logger *log.Logger, addr string, timeout time.Duration) *SSDPDiscoverer {
	return &SSDPDiscoverer{logger: logger, addr: addr, timeout: timeout}
}

func (d *SSDPDiscoverer) Name() string { return "ssdp" }

func (d *SSDPDiscoverer) Discover(ctx context.Context) ([]string, error) {
	dst, err := net.ResolveUDPAddr("udp4", d.addr)
	if err != nil {
		return nil, fmt.Errorf("ssdp discovery failed: %w", err)
	}
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("ssdp discovery failed: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(d.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("ssdp discovery failed: %w", err)
	}

	// unblock the read loop if the caller gives up early
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	search := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + ssdpMulticastAddr + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 2\r\n" +
		"ST: ssdp:all\r\n\r\n"
	if _, err := conn.WriteTo([]byte(search), dst); err != nil {
		return nil, fmt.Errorf("ssdp discovery failed: %w", err)
	}

	hosts := []string{}
	buf := make([]byte, 2048)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			// deadline reached, the search window is over
			break
		}
		if host, ok := parseSSDPResponse(buf[:n]); ok {
			hosts = append(hosts, host)
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	hosts = lo.Uniq(hosts)
	d.logger.Debug("SSDPDiscoverer.Discover", "hosts", hosts)
	return hosts, nil
}

func parseSSDPResponse(data []byte) (string, bool) {
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.Header.Get("hue-bridgeid") == "" && !strings.Contains(resp.Header.Get("Server"), "IpBridge") {
		return "", false
	}
	location, err := url.Parse(resp.Header.Get("Location"))
	if err != nil || location.Hostname() == "" {
		return "", false
	}
	return location.Hostname(), true
}
