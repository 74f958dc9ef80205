package main

import (
	"context"
	"fmt"

	"github.com/Darkingtail/mall4r/internal/adminclient"
	"github.com/Darkingtail/mall4r/internal/domain/catalog"
	"github.com/Darkingtail/mall4r/internal/domain/marketing"
	"github.com/Darkingtail/mall4r/internal/domain/region"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// seeder fills a fresh back-office with demo records. Every record goes
// through the same form a person would use, so validation applies.
type seeder struct {
	api   *adminclient.API
	faker *gofakeit.Faker
	log   *zap.Logger
	count int
	seen  map[string]bool
}

// seedResult counts the records created per resource
type seedResult struct {
	Areas       int `json:"areas"`
	HotSearches int `json:"hotSearches"`
	Notices     int `json:"notices"`
	Brands      int `json:"brands"`
}

func seedCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create demo areas, hot searches, notices and brands",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 for a random one"},
			&cli.IntFlag{Name: "count", Value: 5, Usage: "records per resource"},
		},
		Action: func(c *cli.Context) error {
			if c.Int("count") <= 0 {
				return fmt.Errorf("count must be positive")
			}
			s := newSeeder(rt.api, c.Uint64("seed"), c.Int("count"), rt.log)
			res, err := s.run(c.Context)
			if err != nil {
				return err
			}
			return writeJSON(rt.out, res)
		},
	}
}

func newSeeder(api *adminclient.API, seed uint64, count int, log *zap.Logger) *seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &seeder{
		api:   api,
		faker: gofakeit.New(seed),
		log:   log,
		count: count,
		seen:  make(map[string]bool),
	}
}

func (s *seeder) run(ctx context.Context) (seedResult, error) {
	var res seedResult
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
		dst  *int
	}{
		{"areas", s.seedAreas, &res.Areas},
		{"hot searches", s.seedHotSearches, &res.HotSearches},
		{"notices", s.seedNotices, &res.Notices},
		{"brands", s.seedBrands, &res.Brands},
	}
	for _, step := range steps {
		n, err := step.fn(ctx)
		*step.dst = n
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", step.name, err)
		}
		s.log.Info("Seeded records", zap.String("resource", step.name), zap.Int("count", n))
	}
	return res, nil
}

// seedAreas creates count provinces, each with one city holding one
// district
func (s *seeder) seedAreas(ctx context.Context) (int, error) {
	modal := adminclient.NewAreaModal(s.api, s.log)
	created := 0
	for i := 0; i < s.count; i++ {
		parent := int64(0)
		for level := region.LevelProvince; level <= region.LevelDistrict; level++ {
			name := s.unique(func() string {
				if level == region.LevelProvince {
					return s.faker.State()
				}
				return s.faker.City()
			}, 50)
			area, err := submit(ctx, modal, func(a *region.Area) {
				a.AreaName = name
				a.ParentID = parent
				a.Level = level
			})
			if err != nil {
				return created, err
			}
			created++
			parent = area.AreaID
		}
	}
	return created, nil
}

func (s *seeder) seedHotSearches(ctx context.Context) (int, error) {
	modal := adminclient.NewHotSearchModal(s.api, s.log)
	for i := 0; i < s.count; i++ {
		word := s.unique(s.faker.Word, 255)
		_, err := submit(ctx, modal, func(h *marketing.HotSearch) {
			h.Title = word
			h.Content = truncate(s.faker.Sentence(6), 255)
			h.Seq = i
		})
		if err != nil {
			return i, err
		}
	}
	return s.count, nil
}

func (s *seeder) seedNotices(ctx context.Context) (int, error) {
	modal := adminclient.NewNoticeModal(s.api, s.log)
	for i := 0; i < s.count; i++ {
		_, err := submit(ctx, modal, func(n *marketing.Notice) {
			n.Title = truncate(s.faker.Sentence(4), 36)
			n.Content = s.faker.Paragraph(2, 3, 8, "\n")
			n.Status = 1
			if i == 0 {
				n.IsTop = 1
			}
		})
		if err != nil {
			return i, err
		}
	}
	return s.count, nil
}

func (s *seeder) seedBrands(ctx context.Context) (int, error) {
	modal := adminclient.NewBrandModal(s.api, s.log)
	for i := 0; i < s.count; i++ {
		name := s.unique(s.faker.Company, 30)
		_, err := submit(ctx, modal, func(b *catalog.Brand) {
			b.BrandName = name
			b.Brief = truncate(s.faker.Sentence(8), 250)
			b.Seq = i
		})
		if err != nil {
			return i, err
		}
	}
	return s.count, nil
}

// submit opens an add form, fills it and saves it
func submit[T any](ctx context.Context, modal *adminclient.Modal[T], fill func(*T)) (*T, error) {
	if err := modal.Open(ctx, adminclient.ModeAdd, 0); err != nil {
		return nil, err
	}
	modal.Edit(fill)
	saved, err := modal.Submit(ctx)
	if err != nil {
		modal.Close()
		return nil, err
	}
	return saved, nil
}

// unique draws values until one not used in this run comes up
func (s *seeder) unique(gen func() string, limit int) string {
	for attempt := 0; ; attempt++ {
		v := truncate(gen(), limit)
		if attempt >= 10 {
			v = truncate(fmt.Sprintf("%s %d", v, s.faker.Number(100, 999)), limit)
		}
		if !s.seen[v] {
			s.seen[v] = true
			return v
		}
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
