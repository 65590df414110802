package spotify

import "context"

// Playlist fetches a playlist by id.
func (c *Client) Playlist(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindPlaylists, "")
}

// Show fetches a podcast show by id.
func (c *Client) Show(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindShows, "")
}

// Episode fetches a podcast episode by id.
func (c *Client) Episode(ctx context.Context, id string) (Document, error) {
	return c.GetResource(ctx, id, KindEpisodes, "")
}
