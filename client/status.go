package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fbradyirl/openwebif-go/tool"
	"github.com/fbradyirl/openwebif-go/types"
)

// Status fetches a fresh snapshot of what the box is doing right now.
// Nothing is cached; two sequential calls are fully independent.
func (c *Client) Status(ctx context.Context) (types.StatusInfo, error) {
	var info types.StatusInfo
	if err := c.get(ctx, c.base.String()+tool.PathStatusInfo, &info); err != nil {
		return types.StatusInfo{}, err
	}
	return info, nil
}

// About fetches box metadata: webif version, image, network interfaces.
func (c *Client) About(ctx context.Context) (types.About, error) {
	var about types.About
	if err := c.get(ctx, c.base.String()+tool.PathAbout, &about); err != nil {
		return types.About{}, err
	}
	return about, nil
}

// Version returns the OpenWebif version string of the box.
func (c *Client) Version(ctx context.Context) (string, error) {
	about, err := c.About(ctx)
	if err != nil {
		return "", err
	}
	return about.Info.WebifVersion, nil
}

// MACAddress discovers the MAC of the box's first wired interface from
// /api/about. WOL does not work over wireless, so only eth interfaces
// are considered.
func (c *Client) MACAddress(ctx context.Context) (string, error) {
	about, err := c.About(ctx)
	if err != nil {
		return "", err
	}
	for _, iface := range about.Info.Ifaces {
		if strings.HasPrefix(iface.Name, "eth") && iface.MAC != "" {
			return iface.MAC, nil
		}
	}
	return "", fmt.Errorf("box reported no wired interface with a MAC address")
}
