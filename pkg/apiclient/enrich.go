package apiclient

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CategoryWithCount pairs a category with the number of assets filed
// under it.
type CategoryWithCount struct {
	Category
	AssetCount int64 `json:"asset_count"`
}

// DepartmentWithCount pairs a department with the number of assets
// assigned to it.
type DepartmentWithCount struct {
	Department
	AssetCount int64 `json:"asset_count"`
}

// ListCategoriesWithCounts lists categories and enriches each with its
// asset count. The count calls all launch before any resolves; any
// failure fails the whole enrichment.
func (c *Client) ListCategoriesWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	rows, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryWithCount, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		out[i].Category = row
		id := row.ID
		slot := &out[i]
		g.Go(func() error {
			count, err := c.CountAssets(gctx, AssetCountFilter{CategoryID: &id})
			if err != nil {
				return err
			}
			slot.AssetCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDepartmentsWithCounts lists departments and enriches each with its
// asset count, with the same fan-out shape as the category variant.
func (c *Client) ListDepartmentsWithCounts(ctx context.Context) ([]DepartmentWithCount, error) {
	rows, err := c.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DepartmentWithCount, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for i, row := range rows {
		out[i].Department = row
		id := row.ID
		slot := &out[i]
		g.Go(func() error {
			count, err := c.CountAssets(gctx, AssetCountFilter{DepartmentID: &id})
			if err != nil {
				return err
			}
			slot.AssetCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
