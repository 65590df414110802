package spotify

import "context"

// AudioFeatures fetches the audio features computed for a track.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (Document, error) {
	return c.GetResource(ctx, trackID, KindAudioFeatures, "")
}

// AudioAnalysis fetches the detailed audio analysis of a track, which
// carries the confidence values that AudioFeatures lacks.
func (c *Client) AudioAnalysis(ctx context.Context, trackID string) (Document, error) {
	return c.GetResource(ctx, trackID, KindAudioAnalysis, "")
}
