package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Categories 返回完整分类树。
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var tree []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var cat Category
	if err := c.do(ctx, http.MethodPost, "/categories", in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// RenameCategory 只发送 name，其他字段保持不变。
func (c *Client) RenameCategory(ctx context.Context, id int64, name string) (*Category, error) {
	var cat Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/categories/%d", id), body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory 删除分类；strategy 为空时由服务端决定（默认 cascade）。
func (c *Client) DeleteCategory(ctx context.Context, id int64, strategy string) error {
	path := fmt.Sprintf("/categories/%d", id)
	if strategy != "" {
		path += "?strategy=" + url.QueryEscape(strategy)
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ReorderCategories 提交一个兄弟分组的新顺序，parentID 为 nil 表示根分组。
func (c *Client) ReorderCategories(ctx context.Context, parentID *int64, ids []int64) error {
	body := struct {
		CategoryIDs []int64 `json:"category_ids"`
		ParentID    *int64  `json:"parent_id"`
	}{ids, parentID}
	return c.do(ctx, http.MethodPut, "/categories/reorder", body, nil)
}

func (c *Client) Tags(ctx context.Context, pool Pool) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/tags/"+string(pool), nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, pool Pool, in TagInput) (*Tag, error) {
	var t Tag
	if err := c.do(ctx, http.MethodPost, "/tags/"+string(pool), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTag(ctx context.Context, pool Pool, id int64, patch TagPatch) (*Tag, error) {
	var t Tag
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tags/%s/%d", pool, id), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTag(ctx context.Context, pool Pool, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tags/%s/%d", pool, id), nil, nil)
}

func (c *Client) ReorderTags(ctx context.Context, pool Pool, ids []int64) error {
	body := struct {
		TagIDs []int64 `json:"tag_ids"`
	}{ids}
	return c.do(ctx, http.MethodPut, "/tags/"+string(pool)+"/reorder", body, nil)
}

func (c *Client) Statuses(ctx context.Context) ([]Status, error) {
	var statuses []Status
	if err := c.do(ctx, http.MethodGet, "/statuses", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) CreateStatus(ctx context.Context, in StatusInput) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodPost, "/statuses", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, patch StatusPatch) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/statuses/%d", id), patch, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteStatus(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/statuses/%d", id), nil, nil)
}

func (c *Client) ReorderStatuses(ctx context.Context, ids []int64) error {
	body := struct {
		StatusIDs []int64 `json:"status_ids"`
	}{ids}
	return c.do(ctx, http.MethodPut, "/statuses/reorder", body, nil)
}
