package dashboard

import "github.com/NabievDev/NewPeople-sub000/pkg/apiclient"

// CategoryPicker 是公开表单里的分类选择器。
// 选中有子分类的项会进入下一级；选中叶子则确定选择并关闭。
type CategoryPicker struct {
	roots    []apiclient.Category
	path     []apiclient.Category
	selected *apiclient.Category
	open     bool
}

func NewCategoryPicker(roots []apiclient.Category) *CategoryPicker {
	return &CategoryPicker{roots: roots, open: true}
}

// Options 返回当前层级可选的分类。
func (p *CategoryPicker) Options() []apiclient.Category {
	if len(p.path) == 0 {
		return p.roots
	}
	return p.path[len(p.path)-1].Subcategories
}

// Choose 选择当前层级里的 id。返回 true 表示已确定选择（叶子），false 表示进入了下一级。
func (p *CategoryPicker) Choose(id int64) (bool, error) {
	for _, c := range p.Options() {
		if c.ID != id {
			continue
		}
		if len(c.Subcategories) > 0 {
			p.path = append(p.path, c)
			return false, nil
		}
		p.selected = &c
		p.open = false
		return true, nil
	}
	return false, ErrNotFound
}

// Back 返回上一级，已在根层时不做任何事。
func (p *CategoryPicker) Back() {
	if len(p.path) > 0 {
		p.path = p.path[:len(p.path)-1]
	}
}

// JumpTo 跳到面包屑的第 level 级，0 为根层。
func (p *CategoryPicker) JumpTo(level int) {
	if level >= 0 && level < len(p.path) {
		p.path = p.path[:level]
	}
}

// Breadcrumb 返回从根到当前层的分类名。
func (p *CategoryPicker) Breadcrumb() []string {
	names := make([]string, len(p.path))
	for i, c := range p.path {
		names[i] = c.Name
	}
	return names
}

func (p *CategoryPicker) Selected() (apiclient.Category, bool) {
	if p.selected == nil {
		return apiclient.Category{}, false
	}
	return *p.selected, true
}

func (p *CategoryPicker) Open() bool {
	return p.open
}

// Reset 清空选择并重新打开，回到根层。
func (p *CategoryPicker) Reset() {
	p.path = nil
	p.selected = nil
	p.open = true
}
