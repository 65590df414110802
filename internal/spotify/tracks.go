package spotify

import "context"

// Track fetches a track by id.
func (c *Client) Track(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindTracks, "")
}
