package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/internal/repository"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
	"github.com/NabievDev/NewPeople-sub000/pkg/ordering"

	"gorm.io/gorm"
)

// DeleteStrategy 决定删除有子分类的分类时如何处理子树。
type DeleteStrategy string

const (
	// DeleteCascade 连同所有后代一起删除（默认）
	DeleteCascade DeleteStrategy = "cascade"
	// DeleteProtect 有子分类时拒绝删除
	DeleteProtect DeleteStrategy = "protect"
	// DeleteReparent 子分类上移到被删分类的父节点
	DeleteReparent DeleteStrategy = "reparent"
)

// ParseDeleteStrategy 解析查询参数，空字符串按 cascade 处理。
func ParseDeleteStrategy(raw string) (DeleteStrategy, error) {
	switch DeleteStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DeleteCascade:
		return DeleteCascade, nil
	case DeleteProtect:
		return DeleteProtect, nil
	case DeleteReparent:
		return DeleteReparent, nil
	default:
		return "", ErrInvalidInput
	}
}

// CategoryPatch 是 PATCH /api/categories/:id 的部分更新。
// 指针为 nil 表示不修改；ParentSet 为 true 时 ParentID 生效（nil 表示移到根）。
type CategoryPatch struct {
	Name        *string
	Description *string
	ParentSet   bool
	ParentID    *uint
	Order       *int
}

// CategoryService 封装分类树的业务规则。
type CategoryService interface {
	GetTree() ([]*model.CategoryNode, error)
	FindByID(id uint) (*model.Category, error)
	Create(name string, description *string, parentID *uint) (*model.Category, error)
	Update(id uint, patch CategoryPatch) (*model.Category, error)
	Delete(id uint, strategy DeleteStrategy) error
	// Reorder 按 ids 的顺序把一个兄弟分组重新编号为 0..n-1。
	Reorder(parentID *uint, ids []uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// GetTree 构建分类树。
// 两遍扫描：第一遍建节点 map，第二遍按 ParentID 挂载；父节点缺失的分类作为根返回。
// 每一层都按 (order, id) 排序。
func (s *categoryService) GetTree() ([]*model.CategoryNode, error) {
	if s.categoryRepo == nil {
		return nil, ErrInternal
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*model.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &model.CategoryNode{Category: c, Subcategories: []*model.CategoryNode{}}
	}

	tree := make([]*model.CategoryNode, 0)
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Subcategories = append(parent.Subcategories, node)
				continue
			}
		}
		tree = append(tree, node)
	}
	sortNodes(tree)
	return tree, nil
}

func sortNodes(nodes []*model.CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return nodes[i].ID < nodes[j].ID
	})
	for _, n := range nodes {
		sortNodes(n.Subcategories)
	}
}

func (s *categoryService) FindByID(id uint) (*model.Category, error) {
	if s.categoryRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类，新分类排在兄弟分组末尾。
func (s *categoryService) Create(name string, description *string, parentID *uint) (*model.Category, error) {
	if s.categoryRepo == nil {
		return nil, ErrInternal
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	if parentID != nil {
		if _, err := s.FindByID(*parentID); err != nil {
			return nil, err
		}
	}

	order, err := s.categoryRepo.NextOrder(parentID)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        name,
		Description: normalizeOptional(description),
		ParentID:    parentID,
		Order:       order,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 部分更新分类。
// 换父节点时校验新父节点存在且不在自己的子树里；未显式给 order 时排到新分组末尾。
func (s *categoryService) Update(id uint, patch CategoryPatch) (*model.Category, error) {
	category, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		category.Name = name
	}
	if patch.Description != nil {
		category.Description = normalizeOptional(patch.Description)
	}
	if patch.ParentSet && !sameParent(category.ParentID, patch.ParentID) {
		if patch.ParentID != nil {
			if err := s.checkNoCycle(id, *patch.ParentID); err != nil {
				return nil, err
			}
		}
		category.ParentID = patch.ParentID
		if patch.Order == nil {
			next, err := s.categoryRepo.NextOrder(patch.ParentID)
			if err != nil {
				return nil, err
			}
			category.Order = next
		}
	}
	if patch.Order != nil {
		if *patch.Order < 0 {
			return nil, ErrInvalidInput
		}
		category.Order = *patch.Order
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// checkNoCycle 从新父节点沿 ParentID 向上走，遇到自己就说明会成环。
func (s *categoryService) checkNoCycle(id, newParentID uint) error {
	seen := make(map[uint]struct{})
	current := newParentID
	for {
		if current == id {
			return ErrCategoryCycle
		}
		if _, ok := seen[current]; ok {
			return ErrCategoryCycle
		}
		seen[current] = struct{}{}

		parent, err := s.FindByID(current)
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *categoryService) Delete(id uint, strategy DeleteStrategy) error {
	if s.categoryRepo == nil {
		return ErrInternal
	}
	if id == 0 {
		return ErrInvalidInput
	}

	var err error
	switch strategy {
	case DeleteProtect:
		err = s.categoryRepo.Delete(id)
	case DeleteReparent:
		err = s.categoryRepo.DeleteAndReparentChildren(id)
	case DeleteCascade, "":
		err = s.categoryRepo.DeleteCascade(id)
	default:
		return ErrInvalidInput
	}

	switch {
	case err == nil:
		log.Infow("category deleted", "category_id", id, "strategy", string(strategy))
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repository.ErrCategoryHasChildren):
		return ErrCategoryHasChildren
	default:
		return err
	}
}

func (s *categoryService) Reorder(parentID *uint, ids []uint) error {
	if s.categoryRepo == nil {
		return ErrInternal
	}
	if parentID != nil {
		if _, err := s.FindByID(*parentID); err != nil {
			return err
		}
	}

	siblings, err := s.categoryRepo.FindByParentID(parentID)
	if err != nil {
		return err
	}
	current := make(map[uint]int, len(siblings))
	for _, c := range siblings {
		current[c.ID] = c.Order
	}
	if err := ordering.Validate(ids, current); err != nil {
		log.Warnf("CategoryService.Reorder: %v", err)
		return ErrInvalidReorder
	}

	return s.categoryRepo.UpdateOrders(ordering.Diff(ids, current))
}

func sameParent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// normalizeOptional 把可选字符串标准化：nil 或全空白返回 nil，否则 trim 后返回新指针。
func normalizeOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
