package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "committed/internal/app"
	"committed/internal/adapters/repository"
	"committed/internal/domain/game"
	"committed/internal/domain/model"
	"committed/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fixedRand always rolls the lowest integer and never passes a drop-chance
// check, which pins every combat outcome: a level-1 spawn is always a
// Goblin at 25 HP and no mob ever drops loot.
type fixedRand struct{}

func (fixedRand) Intn(int) int     { return 0 }
func (fixedRand) Float64() float64 { return 0.9 }

type fakeStore struct {
	loadDoc *repository.SaveDocument
	loadErr error
	saveErr error

	saved []*repository.SaveDocument
}

func (f *fakeStore) Load(context.Context) (*repository.SaveDocument, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loadDoc, nil
}

func (f *fakeStore) Save(_ context.Context, doc *repository.SaveDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, doc)
	return nil
}

type fakeSource struct {
	languages    model.LanguageStats
	languagesErr error
	commits      []model.CommitEvent
	commitsErr   error
	approvals    []model.ApprovalEvent
	approvalsErr error

	commitsSince   string
	approvalsSince string
}

func (f *fakeSource) LanguageStats(context.Context) (model.LanguageStats, error) {
	return f.languages, f.languagesErr
}

func (f *fakeSource) RecentCommits(_ context.Context, since string) ([]model.CommitEvent, error) {
	f.commitsSince = since
	return f.commits, f.commitsErr
}

func (f *fakeSource) ApprovedMergeRequests(_ context.Context, since string) ([]model.ApprovalEvent, error) {
	f.approvalsSince = since
	return f.approvals, f.approvalsErr
}

func newTestService(store repository.Store, source service.ActivitySource, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithStore(store),
		service.WithSource(source),
		service.WithCharacterOptions(game.WithRand(fixedRand{})),
	}
	return service.New(append(base, opts...)...)
}

func TestLoadState(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store holding a saved game", t, func() {
		saved := game.NewCharacter("veteran", game.WithRand(fixedRand{}))
		saved.Level = 3
		store := &fakeStore{loadDoc: &repository.SaveDocument{
			Character: saved,
			LastSync:  "2026-08-01T00:00:00Z",
		}}
		svc := newTestService(store, nil)

		Convey("When state is loaded", func() {
			c := svc.LoadState(ctx)

			Convey("Then the saved character comes back with a mob spawned", func() {
				So(c, ShouldEqual, saved)
				So(c.CurrentMob, ShouldNotBeNil)
				So(svc.LastSync(), ShouldEqual, "2026-08-01T00:00:00Z")
			})
		})
	})

	Convey("Given a store with no save document", t, func() {
		store := &fakeStore{loadErr: repository.ErrNotFound}

		Convey("When state is loaded with default options", func() {
			svc := newTestService(store, nil)
			c := svc.LoadState(ctx)

			Convey("Then a fresh default character is created", func() {
				So(c.Name, ShouldEqual, service.DefaultCharacterName)
				So(c.Level, ShouldEqual, 1)
				So(c.CurrentMob, ShouldNotBeNil)
				So(c.CurrentMob.Name, ShouldEqual, "Goblin")
				So(svc.LastSync(), ShouldEqual, "")
			})
		})

		Convey("When a custom character name is configured", func() {
			svc := newTestService(store, nil, service.WithCharacterName("Linus"))
			c := svc.LoadState(ctx)

			Convey("Then the fresh character takes that name", func() {
				So(c.Name, ShouldEqual, "Linus")
			})
		})
	})

	Convey("Given a store whose document is corrupted", t, func() {
		store := &fakeStore{loadErr: repository.ErrCorrupted}
		svc := newTestService(store, nil)

		Convey("When state is loaded", func() {
			c := svc.LoadState(ctx)

			Convey("Then the game falls back to a fresh character", func() {
				So(c.Name, ShouldEqual, service.DefaultCharacterName)
				So(c.Level, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a store that fails outright", t, func() {
		store := &fakeStore{loadErr: errors.New("disk on fire")}
		svc := newTestService(store, nil)

		Convey("When state is loaded", func() {
			c := svc.LoadState(ctx)

			Convey("Then the game still starts with a fresh character", func() {
				So(c, ShouldNotBeNil)
				So(c.Name, ShouldEqual, service.DefaultCharacterName)
			})
		})
	})
}

func TestSaveState(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service that never loaded state", t, func() {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		Convey("When saving", func() {
			err := svc.SaveState(ctx)

			Convey("Then nothing is written", func() {
				So(err, ShouldBeNil)
				So(store.saved, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a loaded game with a sync watermark", t, func() {
		store := &fakeStore{loadDoc: &repository.SaveDocument{
			Character: game.NewCharacter("veteran", game.WithRand(fixedRand{})),
			LastSync:  "2026-08-01T00:00:00Z",
		}}
		svc := newTestService(store, nil)
		svc.LoadState(ctx)

		Convey("When saving succeeds", func() {
			err := svc.SaveState(ctx)

			Convey("Then the document carries character and watermark", func() {
				So(err, ShouldBeNil)
				So(store.saved, ShouldHaveLength, 1)
				So(store.saved[0].Character, ShouldEqual, svc.Character())
				So(store.saved[0].LastSync, ShouldEqual, "2026-08-01T00:00:00Z")
			})
		})

		Convey("When the store rejects the write", func() {
			store.saveErr = errors.New("no space left")
			err := svc.SaveState(ctx)

			Convey("Then the error surfaces to the caller", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with no activity source", t, func() {
		svc := newTestService(&fakeStore{loadErr: repository.ErrNotFound}, nil)

		Convey("When syncing", func() {
			report, err := svc.Sync(ctx)

			Convey("Then the offline state is reported", func() {
				So(report, ShouldBeNil)
				So(errors.Is(err, service.ErrNoActivitySource), ShouldBeTrue)
				So(svc.Offline(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a fresh character and a burst of activity", t, func() {
		store := &fakeStore{loadErr: repository.ErrNotFound}
		source := &fakeSource{
			languages: model.LanguageStats{"Python": 65, "JavaScript": 20, "Go": 15},
			commits: []model.CommitEvent{
				{CommitCount: 2, CreatedAt: "2026-08-29T09:00:00Z", Ref: "main"},
				{CommitCount: 1, CreatedAt: "2026-08-29T09:30:00Z", Ref: "main"},
			},
			approvals: []model.ApprovalEvent{
				{TargetTitle: "Add unit tests", CreatedAt: "2026-08-29T09:15:00Z"},
			},
		}
		svc := newTestService(store, source)
		before := time.Now().UTC()

		Convey("When syncing", func() {
			report, err := svc.Sync(ctx)
			So(err, ShouldBeNil)
			c := svc.Character()

			Convey("Then the class is determined from the dominant language", func() {
				So(report.ClassAssigned, ShouldBeTrue)
				So(c.Class, ShouldEqual, "Wizard")
				So(c.Race, ShouldEqual, "Human")
			})

			Convey("Then each commit lands one attack at level-scaled damage", func() {
				So(report.TotalCommits, ShouldEqual, 3)
				So(c.Stats.TotalCommits, ShouldEqual, 3)
				So(report.Attacks, ShouldHaveLength, 3)

				// Level 1 damage is 12; the starting Goblin has 25 HP.
				So(report.Attacks[0].Damage, ShouldEqual, 12)
				So(report.Attacks[0].Defeated, ShouldBeFalse)
				So(report.Attacks[0].MobHP, ShouldEqual, 13)
				So(report.Attacks[1].MobHP, ShouldEqual, 1)

				So(report.Attacks[2].Defeated, ShouldBeTrue)
				So(report.Attacks[2].Drop, ShouldBeNil)
				So(report.Attacks[2].MobHP, ShouldEqual, 25)
				So(report.Attacks[2].MobMaxHP, ShouldEqual, 25)

				So(c.XP, ShouldAlmostEqual, 25)
				So(c.Level, ShouldEqual, 1)
				So(c.Stats.MobsDefeated, ShouldEqual, 1)
				So(c.Stats.TotalDamageDealt, ShouldEqual, 36)
			})

			Convey("Then the approval forges a special item", func() {
				So(report.SpecialItems, ShouldHaveLength, 1)
				item := report.SpecialItems[0]
				So(item.Name, ShouldEqual, "Legendary Sword")
				So(item.Power, ShouldEqual, 7)
				So(item.Description, ShouldEndWith, "Add unit tests")
				So(c.Stats.MergeRequestsApproved, ShouldEqual, 1)
			})

			Convey("Then the watermark advances to the sync start", func() {
				So(svc.LastSync(), ShouldNotBeEmpty)
				mark, parseErr := time.Parse(time.RFC3339, svc.LastSync())
				So(parseErr, ShouldBeNil)
				So(mark.Before(before.Truncate(time.Second)), ShouldBeFalse)
			})

			Convey("Then the report brackets the level range", func() {
				So(report.StartLevel, ShouldEqual, 1)
				So(report.EndLevel, ShouldEqual, 1)
				So(report.Empty(), ShouldBeFalse)
				So(report.RunID, ShouldNotBeEmpty)
			})
		})
	})

	Convey("Given a previously synced game", t, func() {
		store := &fakeStore{loadDoc: &repository.SaveDocument{
			Character: game.NewCharacter("veteran", game.WithRand(fixedRand{})),
			LastSync:  "2026-08-01T00:00:00Z",
		}}
		store.loadDoc.Character.Class = "Wizard"

		Convey("When syncing with no new activity", func() {
			source := &fakeSource{}
			svc := newTestService(store, source)
			svc.LoadState(ctx)
			report, err := svc.Sync(ctx)

			Convey("Then the watermark bounds both fetches and the report is empty", func() {
				So(err, ShouldBeNil)
				So(source.commitsSince, ShouldEqual, "2026-08-01T00:00:00Z")
				So(source.approvalsSince, ShouldEqual, "2026-08-01T00:00:00Z")
				So(report.Empty(), ShouldBeTrue)
			})

			Convey("And an already classified character is not reclassified", func() {
				So(report.ClassAssigned, ShouldBeFalse)
				So(svc.Character().Class, ShouldEqual, "Wizard")
			})
		})

		Convey("When the commit fetch fails", func() {
			source := &fakeSource{
				commitsErr: errors.New("gitlab 502"),
				approvals:  []model.ApprovalEvent{{TargetTitle: "Hotfix"}},
			}
			svc := newTestService(store, source)
			svc.LoadState(ctx)
			report, err := svc.Sync(ctx)

			Convey("Then the sync degrades instead of failing", func() {
				So(err, ShouldBeNil)
				So(report.Attacks, ShouldBeEmpty)
				So(report.SpecialItems, ShouldHaveLength, 1)
			})

			Convey("And the watermark does not advance", func() {
				So(svc.LastSync(), ShouldEqual, "2026-08-01T00:00:00Z")
			})
		})

		Convey("When the approval fetch fails", func() {
			source := &fakeSource{
				commits:      []model.CommitEvent{{CommitCount: 1}},
				approvalsErr: errors.New("gitlab 502"),
			}
			svc := newTestService(store, source)
			svc.LoadState(ctx)
			report, err := svc.Sync(ctx)

			Convey("Then commits still apply but the watermark holds", func() {
				So(err, ShouldBeNil)
				So(report.Attacks, ShouldHaveLength, 1)
				So(svc.LastSync(), ShouldEqual, "2026-08-01T00:00:00Z")
			})
		})
	})

	Convey("Given an approval without a title", t, func() {
		store := &fakeStore{loadErr: repository.ErrNotFound}
		source := &fakeSource{
			approvals: []model.ApprovalEvent{{TargetTitle: ""}},
		}
		svc := newTestService(store, source)

		Convey("When syncing", func() {
			report, err := svc.Sync(ctx)

			Convey("Then a placeholder title is used", func() {
				So(err, ShouldBeNil)
				So(report.SpecialItems, ShouldHaveLength, 1)
				So(report.SpecialItems[0].Description, ShouldEndWith, "Unknown MR")
			})
		})
	})

	Convey("Given events whose commit count is zero", t, func() {
		store := &fakeStore{loadErr: repository.ErrNotFound}
		source := &fakeSource{
			commits: []model.CommitEvent{{CommitCount: 0}},
		}
		svc := newTestService(store, source)

		Convey("When syncing", func() {
			report, err := svc.Sync(ctx)

			Convey("Then the event still counts as one commit", func() {
				So(err, ShouldBeNil)
				So(report.TotalCommits, ShouldEqual, 1)
				So(report.Attacks, ShouldHaveLength, 1)
			})
		})
	})
}

func TestReportEmpty(t *testing.T) {
	Convey("Given sync reports", t, func() {
		Convey("Then emptiness tracks commits and special items only", func() {
			So((&service.Report{}).Empty(), ShouldBeTrue)
			So((&service.Report{TotalCommits: 1}).Empty(), ShouldBeFalse)
			So((&service.Report{SpecialItems: []game.Item{{Name: "Epic Tome"}}}).Empty(), ShouldBeFalse)
			So((&service.Report{ClassAssigned: true, RunID: strings.Repeat("a", 8)}).Empty(), ShouldBeTrue)
		})
	})
}
