package client

import (
	"context"

	"github.com/fbradyirl/openwebif-go/tool"
	"github.com/fbradyirl/openwebif-go/types"
)

// Bouquets lists the bouquets configured on the box, in lineup order.
// A box with no bouquets yields an empty slice, not an error.
func (c *Client) Bouquets(ctx context.Context) ([]types.Bouquet, error) {
	var resp types.BouquetsResponse
	if err := c.get(ctx, c.base.String()+tool.PathBouquets, &resp); err != nil {
		return nil, err
	}
	if resp.Bouquets == nil {
		return []types.Bouquet{}, nil
	}
	return resp.Bouquets, nil
}

// AllServices lists every service on the box grouped by bouquet.
func (c *Client) AllServices(ctx context.Context) ([]types.ServiceGroup, error) {
	var resp types.AllServicesResponse
	if err := c.get(ctx, c.base.String()+tool.PathAllServices, &resp); err != nil {
		return nil, err
	}
	if resp.Services == nil {
		return []types.ServiceGroup{}, nil
	}
	return resp.Services, nil
}

// BouquetSources lists the zappable services of a bouquet, in bouquet
// order, via the now-playing EPG. An empty bouquetRef selects the first
// configured bouquet; a box with no bouquets yields an empty slice.
func (c *Client) BouquetSources(ctx context.Context, bouquetRef string) ([]types.Service, error) {
	if bouquetRef == "" {
		bouquets, err := c.Bouquets(ctx)
		if err != nil {
			return nil, err
		}
		if len(bouquets) == 0 {
			return []types.Service{}, nil
		}
		bouquetRef = bouquets[0].Ref
	}

	var resp types.EPGNowResponse
	if err := c.get(ctx, tool.BuildEPGNowURL(c.base, bouquetRef), &resp); err != nil {
		return nil, err
	}

	services := make([]types.Service, 0, len(resp.Events))
	for _, ev := range resp.Events {
		services = append(services, types.Service{Ref: ev.ServiceRef, Name: ev.ServiceName})
	}
	return services, nil
}
