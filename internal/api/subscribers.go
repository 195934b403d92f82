package api

import "context"

// Subscribe inscrit un email à la newsletter et renvoie le message serveur
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.Post(ctx, "/api/subscribers", map[string]string{"email": email}, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}
