package dashboard

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/pkg/apiclient"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"
)

// CategoryTree 缓存分类树。新增、改名、删除成功后整树重新加载；
// 只有同级排序是乐观的，失败时同样整树重新加载。
type CategoryTree struct {
	api      CategoryAPI
	prompter Prompter

	roots []apiclient.Category
	// 同一时间只有一个分类处于编辑状态
	editing *int64
}

func NewCategoryTree(api CategoryAPI, prompter Prompter) *CategoryTree {
	return &CategoryTree{api: api, prompter: prompter}
}

func (t *CategoryTree) Load(ctx context.Context) error {
	roots, err := t.api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	t.roots = sortCategories(roots)
	return nil
}

// Roots 返回根分类（带子树）。
func (t *CategoryTree) Roots() []apiclient.Category {
	return t.roots
}

// Find 在整棵树里按 id 查找。
func (t *CategoryTree) Find(id int64) (apiclient.Category, bool) {
	return findCategory(t.roots, id)
}

// Create 提交新分类，parentID 为 nil 时创建根分类。不做乐观插入：
// 新分类的 order 由服务端决定。
func (t *CategoryTree) Create(ctx context.Context, name string, parentID *int64, description *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("create category: empty name")
	}
	if _, err := t.api.CreateCategory(ctx, apiclient.CategoryInput{
		Name:        name,
		Description: description,
		ParentID:    parentID,
	}); err != nil {
		log.Warnw("create category failed", "name", name, "error", err)
		return err
	}
	return t.Load(ctx)
}

// BeginEdit 把 id 设为当前编辑项，之前的编辑直接丢弃。
func (t *CategoryTree) BeginEdit(id int64) error {
	if _, ok := t.Find(id); !ok {
		return ErrNotFound
	}
	t.editing = &id
	return nil
}

func (t *CategoryTree) Editing() (int64, bool) {
	if t.editing == nil {
		return 0, false
	}
	return *t.editing, true
}

func (t *CategoryTree) CancelEdit() {
	t.editing = nil
}

// Rename 只提交 name，成功后退出编辑并重新加载。
func (t *CategoryTree) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename category: empty name")
	}
	if _, err := t.api.RenameCategory(ctx, id, name); err != nil {
		log.Warnw("rename category failed", "id", id, "error", err)
		return err
	}
	if cur, ok := t.Editing(); ok && cur == id {
		t.editing = nil
	}
	return t.Load(ctx)
}

// Delete 确认后删除分类。子分类和关联诉求如何处理由服务端决定。
func (t *CategoryTree) Delete(ctx context.Context, id int64) error {
	cat, ok := t.Find(id)
	if !ok {
		return ErrNotFound
	}
	if !t.prompter.Confirm(fmt.Sprintf("Удалить категорию «%s»?", cat.Name)) {
		return ErrCancelled
	}
	if err := t.api.DeleteCategory(ctx, id, ""); err != nil {
		log.Warnw("delete category failed", "id", id, "error", err)
		return err
	}
	if cur, ok := t.Editing(); ok && cur == id {
		t.editing = nil
	}
	return t.Load(ctx)
}

// Reorder 在 parentID 的子分类（nil 为根列表）内把 from 位置移到 to 位置。
// 本地立即生效并重新编号为 0..n-1，然后提交整个兄弟分组的新顺序。
func (t *CategoryTree) Reorder(ctx context.Context, parentID *int64, from, to int) error {
	siblings, ok := siblingsOf(t.roots, parentID)
	if !ok {
		return ErrNotFound
	}
	moved, err := ordering.Move(siblings, from, to)
	if err != nil {
		return err
	}
	ids := make([]int64, len(moved))
	for i := range moved {
		moved[i].Order = i
		ids[i] = moved[i].ID
	}

	return Mutation[[]apiclient.Category]{
		Op:    "reorder categories",
		State: &t.roots,
		Apply: func(roots []apiclient.Category) []apiclient.Category {
			out, _ := replaceSiblings(roots, parentID, moved)
			return out
		},
		Remote: func(ctx context.Context) (func([]apiclient.Category) []apiclient.Category, error) {
			return nil, t.api.ReorderCategories(ctx, parentID, ids)
		},
		Resync: t.Load,
	}.Run(ctx)
}

// FlatCategory 是扁平化后的一行，Label 带层级前缀。
type FlatCategory struct {
	apiclient.Category
	Depth int
	Label string
}

// Flatten 深度优先展开整棵树，每一层祖先在名字前加一个破折号前缀。
func (t *CategoryTree) Flatten() []FlatCategory {
	var out []FlatCategory
	var walk func(nodes []apiclient.Category, depth int)
	walk = func(nodes []apiclient.Category, depth int) {
		for _, n := range nodes {
			out = append(out, FlatCategory{
				Category: n,
				Depth:    depth,
				Label:    strings.Repeat("— ", depth) + n.Name,
			})
			walk(n.Subcategories, depth+1)
		}
	}
	walk(t.roots, 0)
	return out
}

// ParentOptions 只提供根分类作为可选父级，界面上树最多两层。
func (t *CategoryTree) ParentOptions() []apiclient.Category {
	out := make([]apiclient.Category, 0, len(t.roots))
	for _, r := range t.roots {
		r.Subcategories = nil
		out = append(out, r)
	}
	return out
}

func sortCategories(nodes []apiclient.Category) []apiclient.Category {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b apiclient.Category) int { return a.Order - b.Order })
	for i := range out {
		if len(out[i].Subcategories) > 0 {
			out[i].Subcategories = sortCategories(out[i].Subcategories)
		}
	}
	return out
}

func findCategory(nodes []apiclient.Category, id int64) (apiclient.Category, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if c, ok := findCategory(n.Subcategories, id); ok {
			return c, true
		}
	}
	return apiclient.Category{}, false
}

func siblingsOf(roots []apiclient.Category, parentID *int64) ([]apiclient.Category, bool) {
	if parentID == nil {
		return roots, true
	}
	parent, ok := findCategory(roots, *parentID)
	if !ok {
		return nil, false
	}
	return parent.Subcategories, true
}

// replaceSiblings 返回把 parentID 的子列表换成 siblings 的新树，沿途节点都是副本。
func replaceSiblings(nodes []apiclient.Category, parentID *int64, siblings []apiclient.Category) ([]apiclient.Category, bool) {
	if parentID == nil {
		return siblings, true
	}
	for i, n := range nodes {
		if n.ID == *parentID {
			out := slices.Clone(nodes)
			out[i].Subcategories = siblings
			return out, true
		}
		if sub, ok := replaceSiblings(n.Subcategories, parentID, siblings); ok {
			out := slices.Clone(nodes)
			out[i].Subcategories = sub
			return out, true
		}
	}
	return nodes, false
}
