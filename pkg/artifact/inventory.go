package artifact

import (
	"fmt"

	"github.com/goliatone/go-packgallery/pkg/config"
	"github.com/goliatone/go-packgallery/pkg/pngsize"
	"github.com/goliatone/go-packgallery/pkg/stageerr"
)

// Page is one discovered page image.
type Page struct {
	// Index is the zero-based page index.
	Index int
	// Name is the store name of the image.
	Name   string
	Width  int
	Height int
}

// Group holds the pages rendered for one (category, size limit) pair.
type Group struct {
	Category config.Category
	Limit    config.SizeLimit
	Pages    []Page
	// Gap is set when a page exists after the first missing index. Such
	// pages are not part of Pages.
	Gap bool
}

// MaxSide returns the longest side across the group's pages.
func (g Group) MaxSide() int {
	side := 0
	for _, p := range g.Pages {
		side = max(side, p.Width, p.Height)
	}
	return side
}

// Inventory lists every group in category, then size limit, declaration
// order.
type Inventory struct {
	Groups []Group
}

// Group returns the group for a category name and limit.
func (inv Inventory) Group(category string, limit config.SizeLimit) (Group, bool) {
	for _, g := range inv.Groups {
		if g.Category.Name == category && g.Limit == limit {
			return g, true
		}
	}
	return Group{}, false
}

// PageCount returns the total number of pages in the inventory.
func (inv Inventory) PageCount() int {
	n := 0
	for _, g := range inv.Groups {
		n += len(g.Pages)
	}
	return n
}

// Discover probes page images for every category and size limit. Probing
// stops at the first missing index; the header of every found page is read
// to record its dimensions.
func Discover(store Store, cfg config.Config) (Inventory, error) {
	var inv Inventory
	for _, cat := range cfg.Categories {
		for _, limit := range cfg.SizeLimits {
			group, err := discoverGroup(store, cfg, cat, limit)
			if err != nil {
				return Inventory{}, err
			}
			inv.Groups = append(inv.Groups, group)
		}
	}
	return inv, nil
}

func discoverGroup(store Store, cfg config.Config, cat config.Category, limit config.SizeLimit) (Group, error) {
	group := Group{Category: cat, Limit: limit}
	for i := 0; i < cfg.MaxPages; i++ {
		name := cfg.ImageName(cat, limit, i)
		ok, err := store.Exists(name)
		if err != nil {
			return Group{}, err
		}
		if !ok {
			if i+1 < cfg.MaxPages {
				next, err := store.Exists(cfg.ImageName(cat, limit, i+1))
				if err != nil {
					return Group{}, err
				}
				group.Gap = next
			}
			break
		}

		size, err := probe(store, name)
		if err != nil {
			return Group{}, err
		}
		group.Pages = append(group.Pages, Page{
			Index:  i,
			Name:   name,
			Width:  int(size.Width),
			Height: int(size.Height),
		})
	}
	return group, nil
}

func probe(store Store, name string) (pngsize.Size, error) {
	r, err := store.Open(name)
	if err != nil {
		return pngsize.Size{}, fmt.Errorf("artifact: open %s: %w", name, err)
	}
	defer r.Close()

	size, err := pngsize.Read(r)
	if err != nil {
		return pngsize.Size{}, stageerr.Format(store.Path(name), err)
	}
	return size, nil
}
