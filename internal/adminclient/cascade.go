package adminclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/Darkingtail/mall4r/internal/domain/shared"
)

// Option is one node of a cascading selector
type Option struct {
	Value    int64     `json:"value"`
	Label    string    `json:"label"`
	Level    int       `json:"level"`
	IsLeaf   bool      `json:"isLeaf"`
	Loaded   bool      `json:"-"`
	Children []*Option `json:"children,omitempty"`
}

// ChildFetcher loads the direct children of parentID; 0 loads the roots
type ChildFetcher func(ctx context.Context, parentID int64) ([]Option, error)

// AreaFetcher loads areas level by level through listByPid
func AreaFetcher(areas *Resource[region.Area]) ChildFetcher {
	return func(ctx context.Context, parentID int64) ([]Option, error) {
		list, err := areas.ListByPid(ctx, parentID)
		if err != nil {
			return nil, err
		}
		out := make([]Option, 0, len(list))
		for _, a := range list {
			out = append(out, Option{Value: a.AreaID, Label: a.AreaName, Level: a.Level})
		}
		return out, nil
	}
}

// Cascader is a lazily loaded option tree. A node becomes a leaf once its
// level reaches leafLevel; leaves are never fetched.
type Cascader struct {
	fetch     ChildFetcher
	leafLevel int

	mu     sync.Mutex
	roots  []*Option
	index  map[int64]*Option
	loaded bool
}

// NewCascader creates an empty cascader; call Load before use
func NewCascader(fetch ChildFetcher, leafLevel int) *Cascader {
	return &Cascader{
		fetch:     fetch,
		leafLevel: leafLevel,
		index:     make(map[int64]*Option),
	}
}

// NewAreaCascader picks province, city and district
func NewAreaCascader(api *API) *Cascader {
	return NewCascader(AreaFetcher(api.Area), region.LevelDistrict)
}

// NewCityCascader picks province and city, as the transport fee rows do
func NewCityCascader(api *API) *Cascader {
	return NewCascader(AreaFetcher(api.Area), region.LevelCity)
}

// Load fetches the top-level options
func (c *Cascader) Load(ctx context.Context) error {
	opts, err := c.fetch(ctx, 0)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.roots = c.adopt(opts)
	c.loaded = true
	return nil
}

// Roots returns the option tree
func (c *Cascader) Roots() []*Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roots
}

// Node returns the loaded option with value id
func (c *Cascader) Node(id int64) (*Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.index[id]
	return n, ok
}

// LoadChildren fetches the children of id once and merges them in place.
// Leaves and already loaded nodes do not fetch.
func (c *Cascader) LoadChildren(ctx context.Context, id int64) error {
	c.mu.Lock()
	node, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("cascader: option %d is not loaded", id)
	}
	if node.IsLeaf || node.Loaded {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	opts, err := c.fetch(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if node.Loaded {
		return nil
	}
	node.Children = c.adopt(opts)
	node.Loaded = true
	if len(node.Children) == 0 {
		node.IsLeaf = true
	}
	return nil
}

// Select expands the option the user picked and returns its path
func (c *Cascader) Select(ctx context.Context, id int64) ([]int64, error) {
	if err := c.LoadChildren(ctx, id); err != nil {
		return nil, err
	}
	return FindPathToNode(c.Roots(), id), nil
}

// PreloadPath fetches each ancestor level in order so a stored selection
// can be shown, then returns the path to the last id. Roots are loaded
// first when needed.
func (c *Cascader) PreloadPath(ctx context.Context, ancestorIDs []int64) ([]int64, error) {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if !loaded {
		if err := c.Load(ctx); err != nil {
			return nil, err
		}
	}
	for _, id := range ancestorIDs {
		if err := c.LoadChildren(ctx, id); err != nil {
			return nil, err
		}
	}
	if len(ancestorIDs) == 0 {
		return nil, nil
	}
	return FindPathToNode(c.Roots(), ancestorIDs[len(ancestorIDs)-1]), nil
}

// Labels returns the labels along path, e.g. for "广东省/广州市/天河区"
func (c *Cascader) Labels(path []int64) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(path))
	for _, id := range path {
		if n, ok := c.index[id]; ok {
			out = append(out, n.Label)
		}
	}
	return out
}

// adopt converts fetched options to nodes and indexes them; caller holds mu
func (c *Cascader) adopt(opts []Option) []*Option {
	out := make([]*Option, 0, len(opts))
	for i := range opts {
		n := opts[i]
		n.Children = nil
		n.Loaded = false
		n.IsLeaf = c.leafLevel > 0 && n.Level >= c.leafLevel
		c.index[n.Value] = &n
		out = append(out, &n)
	}
	return out
}

// FindPathToNode returns the values from a root down to targetID, or nil
// when targetID is not in the tree
func FindPathToNode(tree []*Option, targetID int64) []int64 {
	for _, n := range tree {
		if n.Value == targetID {
			return []int64{n.Value}
		}
		if sub := FindPathToNode(n.Children, targetID); sub != nil {
			return append([]int64{n.Value}, sub...)
		}
	}
	return nil
}

type treeItem struct {
	opt    *Option
	parent int64
}

func (t treeItem) GetID() int64       { return t.opt.Value }
func (t treeItem) GetParentID() int64 { return t.parent }

// BuildTree links flat parent-linked records into an option forest. Roots
// have level 0 and nodes without children are leaves.
func BuildTree[T shared.TreeNode](flat []T, label func(T) string) []*Option {
	items := make([]treeItem, 0, len(flat))
	for _, r := range flat {
		items = append(items, treeItem{
			opt:    &Option{Value: r.GetID(), Label: label(r), Loaded: true},
			parent: r.GetParentID(),
		})
	}
	forest := shared.BuildForest(items, func(parent *treeItem, child treeItem) {
		parent.opt.Children = append(parent.opt.Children, child.opt)
	}, nil)

	roots := make([]*Option, 0, len(forest))
	for _, r := range forest {
		roots = append(roots, r.opt)
	}
	setLevels(roots, 0)
	return roots
}

func setLevels(nodes []*Option, level int) {
	for _, n := range nodes {
		n.Level = level
		n.IsLeaf = len(n.Children) == 0
		setLevels(n.Children, level+1)
	}
}

// CategoryTree builds the parent picker of the category modal from either
// the flat or the nested category list
func CategoryTree(categories []catalog.Category) []*Option {
	return BuildTree(FlattenCategories(categories), func(c catalog.Category) string { return c.CategoryName })
}

// FlattenCategories turns a category forest back into a flat list
func FlattenCategories(forest []catalog.Category) []catalog.Category {
	var out []catalog.Category
	for _, c := range forest {
		kids := c.Categories
		c.Categories = nil
		out = append(out, c)
		out = append(out, FlattenCategories(kids)...)
	}
	return out
}

// Exclude returns a copy of tree without id and its subtree, so a
// category cannot be moved below itself
func Exclude(tree []*Option, id int64) []*Option {
	out := make([]*Option, 0, len(tree))
	for _, n := range tree {
		if n.Value == id {
			continue
		}
		cp := *n
		cp.Children = nil
		if len(n.Children) > 0 {
			cp.Children = Exclude(n.Children, id)
		}
		out = append(out, &cp)
	}
	return out
}
