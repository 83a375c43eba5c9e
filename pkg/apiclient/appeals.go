package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SubmitAppeal 提交一条诉求，公开接口，不需要登录。
func (c *Client) SubmitAppeal(ctx context.Context, in AppealInput) (*Appeal, error) {
	var a Appeal
	if err := c.do(ctx, http.MethodPost, "/appeals", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Appeals(ctx context.Context, q AppealQuery) ([]Appeal, error) {
	values := url.Values{}
	if q.InternalTagID > 0 {
		values.Set("internal_tag_id", strconv.FormatInt(q.InternalTagID, 10))
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/appeals"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var appeals []Appeal
	if err := c.do(ctx, http.MethodGet, path, nil, &appeals); err != nil {
		return nil, err
	}
	return appeals, nil
}

func (c *Client) Appeal(ctx context.Context, id int64) (*Appeal, error) {
	var a Appeal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/appeals/%d", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateAppeal(ctx context.Context, id int64, patch AppealPatch) (*Appeal, error) {
	var a Appeal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/appeals/%d", id), patch, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) AttachTag(ctx context.Context, appealID, tagID int64, pool Pool) (*Appeal, error) {
	return c.appealTag(ctx, http.MethodPost, appealID, tagID, pool)
}

func (c *Client) DetachTag(ctx context.Context, appealID, tagID int64, pool Pool) (*Appeal, error) {
	return c.appealTag(ctx, http.MethodDelete, appealID, tagID, pool)
}

func (c *Client) appealTag(ctx context.Context, method string, appealID, tagID int64, pool Pool) (*Appeal, error) {
	var a Appeal
	path := fmt.Sprintf("/appeals/%d/tags/%d?pool=%s", appealID, tagID, pool)
	if err := c.do(ctx, method, path, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Comments(ctx context.Context, appealID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/appeals/%d/comments", appealID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) AddComment(ctx context.Context, appealID int64, text string, internal bool) (*Comment, error) {
	var cm Comment
	body := struct {
		Text       string `json:"text"`
		IsInternal bool   `json:"is_internal"`
	}{text, internal}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/appeals/%d/comments", appealID), body, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}
