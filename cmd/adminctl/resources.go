package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Darkingtail/mall4r/internal/adminclient"
)

// resourceOps are the generic commands of one back-office resource
type resourceOps struct {
	page   func(ctx context.Context, page adminclient.PageRequest, filter map[string]string) (any, error)
	get    func(ctx context.Context, key string) (any, error)
	remove func(ctx context.Context, keys []string) error
}

// deleteMode tells how a resource removes records
type deleteMode int

const (
	deleteEach deleteMode = iota
	deleteBatch
)

func opsFor[T any](r *adminclient.Resource[T], mode deleteMode) resourceOps {
	return resourceOps{
		page: func(ctx context.Context, page adminclient.PageRequest, filter map[string]string) (any, error) {
			return r.FetchPage(ctx, page, filter)
		},
		get: func(ctx context.Context, key string) (any, error) {
			id, err := parseID(key)
			if err != nil {
				return nil, err
			}
			return r.GetByID(ctx, id)
		},
		remove: func(ctx context.Context, keys []string) error {
			ids, err := parseIDs(keys)
			if err != nil {
				return err
			}
			if mode == deleteBatch {
				return r.BatchDelete(ctx, ids)
			}
			for _, id := range ids {
				if err := r.Delete(ctx, id); err != nil {
					return fmt.Errorf("delete %d: %w", id, err)
				}
			}
			return nil
		},
	}
}

// resourceRegistry maps command line names to resource operations
func resourceRegistry(api *adminclient.API) map[string]resourceOps {
	reg := map[string]resourceOps{
		"area":      opsFor(api.Area, deleteEach),
		"pickAddr":  opsFor(api.PickAddr, deleteBatch),
		"transport": opsFor(api.Transport.Resource, deleteBatch),
		"hotSearch": opsFor(api.HotSearch, deleteBatch),
		"indexImg":  opsFor(api.IndexImg, deleteBatch),
		"notice":    opsFor(api.Notice, deleteEach),
		"userAddr":  opsFor(api.UserAddr, deleteEach),
		"order":     opsFor(api.Order.Resource, deleteEach),
		"category":  opsFor(api.Category.Resource, deleteEach),
		"brand":     opsFor(api.Brand, deleteEach),
		"spec":      opsFor(api.Spec, deleteEach),
		"attribute": opsFor(api.Attribute, deleteEach),
		"prodTag":   opsFor(api.ProdTag.Resource, deleteEach),
		"prodComm":  opsFor(api.ProdComm.Resource, deleteEach),
		"prod":      opsFor(api.Product.Resource, deleteBatch),
		"sysUser":   opsFor(api.SysUser.Resource, deleteBatch),
		"sysRole":   opsFor(api.SysRole, deleteBatch),
		"sysMenu":   opsFor(api.SysMenu.Resource, deleteEach),
	}

	// members are keyed by their string user id
	members := opsFor(api.Member.Resource, deleteBatch)
	members.get = func(ctx context.Context, key string) (any, error) {
		return api.Member.GetByUserID(ctx, key)
	}
	members.remove = func(ctx context.Context, keys []string) error {
		return api.Member.BatchDeleteUsers(ctx, keys)
	}
	reg["member"] = members

	// orders are looked up by order number
	orders := reg["order"]
	orders.get = func(ctx context.Context, key string) (any, error) {
		return api.Order.Info(ctx, key)
	}
	orders.remove = nil
	reg["order"] = orders
	return reg
}

func lookupResource(reg map[string]resourceOps, name string) (resourceOps, error) {
	ops, ok := reg[name]
	if !ok {
		return resourceOps{}, fmt.Errorf("unknown resource %q, expected one of: %s", name, strings.Join(resourceNames(reg), ", "))
	}
	return ops, nil
}

func resourceNames(reg map[string]resourceOps) []string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(keys []string) ([]int64, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one id is required")
	}
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		id, err := parseID(k)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseFilters turns repeated key=value arguments into page filters
func parseFilters(pairs []string) (map[string]string, error) {
	filters := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", p)
		}
		filters[key] = value
	}
	return filters, nil
}
