package spotify

import (
	"context"
	"net/url"
)

// GetResource fetches the object with the given id. An empty kind selects
// albums and an empty version selects DefaultVersion.
func (c *Client) GetResource(ctx context.Context, id string, kind ResourceKind, version string) (Document, error) {
	if kind == "" {
		kind = KindAlbums
	}
	if version == "" {
		version = DefaultVersion
	}

	endpoint := c.baseURL + "/" + version + "/" + string(kind) + "/" + url.PathEscape(id)
	return c.get(ctx, string(kind), endpoint)
}

// Album fetches an album by id.
func (c *Client) Album(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindAlbums, "")
}

// Artist fetches an artist by id.
func (c *Client) Artist(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindArtists, "")
}
