package demo_test

import (
	"context"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"committed/internal/adapters/demo"
	service "committed/internal/app"
)

// The demo source must stay a drop-in replacement for the network client.
var _ service.ActivitySource = (*demo.Source)(nil)

func TestLanguageStats(t *testing.T) {
	Convey("Given a demo source", t, func() {
		source := demo.New()
		ctx := context.Background()

		Convey("When fetching language stats", func() {
			stats, err := source.LanguageStats(ctx)

			Convey("Then the fixed profile comes back with Python dominant", func() {
				So(err, ShouldBeNil)
				So(stats, ShouldHaveLength, 3)
				So(stats["Python"], ShouldAlmostEqual, 65)
				So(stats["JavaScript"], ShouldAlmostEqual, 20)
				So(stats["Go"], ShouldAlmostEqual, 15)
			})

			Convey("And mutating the result does not leak into later calls", func() {
				stats["Python"] = 0
				again, err := source.LanguageStats(ctx)
				So(err, ShouldBeNil)
				So(again["Python"], ShouldAlmostEqual, 65)
			})
		})
	})
}

func TestRecentCommits(t *testing.T) {
	Convey("Given a seeded demo source", t, func() {
		source := demo.New(demo.WithRand(rand.New(rand.NewSource(1))))
		ctx := context.Background()

		Convey("When synthesizing commits repeatedly", func() {
			Convey("Then every batch stays inside the documented bounds", func() {
				for i := 0; i < 50; i++ {
					commits, err := source.RecentCommits(ctx, "")
					So(err, ShouldBeNil)
					So(len(commits), ShouldBeBetweenOrEqual, 2, 5)
					for _, commit := range commits {
						So(commit.CommitCount, ShouldBeBetweenOrEqual, 1, 4)
						So(commit.Ref, ShouldEqual, "main")
					}
				}
			})
		})
	})
}

func TestApprovedMergeRequests(t *testing.T) {
	Convey("Given a seeded demo source", t, func() {
		source := demo.New(demo.WithRand(rand.New(rand.NewSource(1))))
		ctx := context.Background()

		Convey("When synthesizing approvals repeatedly", func() {
			titles := map[string]struct{}{
				"Fix critical bug in payment processing": {},
				"Add dark mode support":                  {},
				"Refactor authentication flow":           {},
				"Improve database query performance":     {},
				"Update API documentation":               {},
			}

			Convey("Then batches are small and titles come from the pool", func() {
				for i := 0; i < 50; i++ {
					approvals, err := source.ApprovedMergeRequests(ctx, "")
					So(err, ShouldBeNil)
					So(len(approvals), ShouldBeBetweenOrEqual, 0, 2)
					for _, approval := range approvals {
						_, known := titles[approval.TargetTitle]
						So(known, ShouldBeTrue)
					}
				}
			})
		})
	})
}
