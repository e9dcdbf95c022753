package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/devfort/behabitual/internal/server"
	"github.com/devfort/behabitual/pkg/habit"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path, nil)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", path, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("POST %s: %s: %s", path, res.Status, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var response server.HabitListResponse
	if err := c.get(ctx, "/habits", &response); err != nil {
		return nil, err
	}
	return response.Habits, nil
}

func (c *Client) GetHabit(ctx context.Context, id string) (*server.HabitGetResponse, error) {
	var out server.HabitGetResponse
	if err := c.get(ctx, "/habits/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateHabit(ctx context.Context, req server.CreateHabitRequest) (*habit.Habit, error) {
	var out habit.Habit
	if err := c.post(ctx, "/habits", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Record(ctx context.Context, id, date string, value int) (*server.RecordResponse, error) {
	var out server.RecordResponse
	req := server.RecordRequest{Date: date, Value: &value}
	if err := c.post(ctx, "/habits/"+id+"/record", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Archive(ctx context.Context, id string, archived bool) error {
	body := map[string]bool{"archived": archived}
	return c.post(ctx, "/habits/"+id+"/archive", body, nil)
}

func (c *Client) GetStreaks(ctx context.Context, id string) ([]int, error) {
	var out server.StreaksResponse
	if err := c.get(ctx, "/habits/"+id+"/streaks", &out); err != nil {
		return nil, err
	}
	return out.Streaks, nil
}

func (c *Client) GetBacklog(ctx context.Context, id string) ([]server.PeriodResponse, error) {
	var out server.BacklogResponse
	if err := c.get(ctx, "/habits/"+id+"/backlog", &out); err != nil {
		return nil, err
	}
	return out.Periods, nil
}

func (c *Client) GetBuckets(ctx context.Context, id string, res habit.Resolution) ([]habit.Bucket, error) {
	var out server.BucketsResponse
	path := "/habits/" + id + "/buckets"
	if res != "" {
		path += "?resolution=" + string(res)
	}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Buckets, nil
}
