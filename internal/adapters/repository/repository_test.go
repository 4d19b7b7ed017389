package repository_test

import (
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courserec/internal/adapters/repository"
	"github.com/okian/courserec/internal/domain/model"
	"github.com/okian/courserec/pkg/metrics"
)

func sampleCourses() []model.Course {
	return []model.Course{
		{
			ID: "c1", Title: "Intro to Machine Learning",
			Description: "machine learning basics",
			Duration:    "4 weeks", SkillLevel: model.SkillBeginner,
			Pricing: model.PricingFree, Category: "AI",
		},
		{
			ID: "c2", Title: "Advanced Neural Networks",
			Description: "deep neural networks",
			Duration:    "10 weeks", SkillLevel: model.SkillAdvanced,
			Pricing: model.PricingPaid, Category: "AI",
		},
	}
}

// encodingSampleCount reads the encoding latency histogram's sample
// count from the registry. The registry is process-global, so tests
// compare counts before and after rather than asserting absolutes.
func encodingSampleCount() uint64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() == "courserec_engine_encoding_latency_milliseconds" {
			for _, m := range mf.GetMetric() {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestSnapshotStore(t *testing.T) {
	Convey("Given an empty snapshot store", t, func() {
		store := repository.NewSnapshotStore()
		ctx := context.Background()

		Convey("When no snapshot has been installed", func() {
			snap, ok := store.Current()

			Convey("Then Current reports absence and Count is zero", func() {
				So(ok, ShouldBeFalse)
				So(snap, ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When a catalog is installed", func() {
			snap, err := store.Replace(ctx, sampleCourses())

			Convey("Then the snapshot is fitted and current", func() {
				So(err, ShouldBeNil)
				So(snap.Version(), ShouldEqual, 1)
				So(snap.Len(), ShouldEqual, 2)
				So(snap.VocabularySize(), ShouldBeGreaterThan, 0)
				So(store.Count(ctx), ShouldEqual, 2)

				cat, ok := snap.CategoryOf("c1")
				So(ok, ShouldBeTrue)
				So(cat, ShouldEqual, "AI")
				So(snap.Has("nope"), ShouldBeFalse)
			})

			Convey("And a second catalog replaces it", func() {
				older := snap
				newer, err := store.Replace(ctx, sampleCourses()[:1])

				Convey("Then the version advances and the old snapshot is intact", func() {
					So(err, ShouldBeNil)
					So(newer.Version(), ShouldEqual, 2)
					So(newer.Len(), ShouldEqual, 1)
					So(older.Len(), ShouldEqual, 2)

					current, ok := store.Current()
					So(ok, ShouldBeTrue)
					So(current.Version(), ShouldEqual, 2)
				})
			})
		})

		Convey("When a catalog fit completes", func() {
			before := encodingSampleCount()
			_, err := store.Replace(ctx, sampleCourses())

			Convey("Then the encoding latency histogram records it", func() {
				So(err, ShouldBeNil)
				So(encodingSampleCount(), ShouldBeGreaterThan, before)
			})
		})

		Convey("When the catalog is empty", func() {
			_, err := store.Replace(ctx, nil)

			Convey("Then ErrEmptyCatalog is returned", func() {
				So(err, ShouldWrap, repository.ErrEmptyCatalog)
			})
		})

		Convey("When two courses share an id", func() {
			dup := append(sampleCourses(), model.Course{
				ID: "c1", Title: "Copy", SkillLevel: model.SkillBeginner, Pricing: model.PricingFree,
			})
			_, err := store.Replace(ctx, dup)

			Convey("Then ErrDuplicateCourse is returned", func() {
				So(err, ShouldWrap, repository.ErrDuplicateCourse)
			})
		})
	})
}

func TestLoadCatalog(t *testing.T) {
	Convey("Given a well-formed catalog CSV", t, func() {
		csv := strings.Join([]string{
			"id,title,description,platform,duration,skill_level,type,category,url",
			`c1,Intro to ML,machine learning basics,Coursera,4 weeks,Beginner,Free,AI,https://example.com/ml`,
			`c2,Deep Learning,neural networks,Udemy,3 months,Advanced,Paid,AI,https://example.com/dl`,
		}, "\n")

		Convey("When it is parsed", func() {
			courses, err := repository.LoadCatalog(strings.NewReader(csv))

			Convey("Then every row becomes a course", func() {
				So(err, ShouldBeNil)
				So(len(courses), ShouldEqual, 2)
				So(courses[0].ID, ShouldEqual, "c1")
				So(courses[0].SkillLevel, ShouldEqual, model.SkillBeginner)
				So(courses[0].Pricing, ShouldEqual, model.PricingFree)
				So(courses[1].Duration, ShouldEqual, "3 months")
			})
		})
	})

	Convey("Given a CSV with a missing column", t, func() {
		csv := "id,title\nc1,Intro"

		Convey("When it is parsed", func() {
			_, err := repository.LoadCatalog(strings.NewReader(csv))

			Convey("Then the file is rejected", func() {
				So(err, ShouldWrap, repository.ErrMalformedRow)
			})
		})
	})

	Convey("Given a CSV with an unknown skill level", t, func() {
		csv := strings.Join([]string{
			"id,title,description,platform,duration,skill_level,type,category,url",
			`c1,Intro,basics,Coursera,4 weeks,Wizard,Free,AI,https://example.com`,
		}, "\n")

		Convey("When it is parsed", func() {
			_, err := repository.LoadCatalog(strings.NewReader(csv))

			Convey("Then the row is rejected", func() {
				So(err, ShouldWrap, repository.ErrMalformedRow)
			})
		})
	})

	Convey("Given a CSV with only a header", t, func() {
		csv := "id,title,description,platform,duration,skill_level,type,category,url"

		Convey("When it is parsed", func() {
			_, err := repository.LoadCatalog(strings.NewReader(csv))

			Convey("Then ErrEmptyCatalog is returned", func() {
				So(err, ShouldWrap, repository.ErrEmptyCatalog)
			})
		})
	})
}

func TestMemoryFeedbackStore(t *testing.T) {
	Convey("Given an empty feedback store", t, func() {
		store := repository.NewMemoryFeedbackStore()
		ctx := context.Background()

		Convey("When a rating is stored", func() {
			created, err := store.Upsert(ctx, model.FeedbackRecord{
				UserID: "u1", CourseID: "c1", Rating: model.RatingUp,
			})

			Convey("Then a new row is created", func() {
				So(err, ShouldBeNil)
				So(created, ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And the same pair is rated again", func() {
				replaced, err := store.Upsert(ctx, model.FeedbackRecord{
					UserID: "u1", CourseID: "c1", Rating: model.RatingDown,
				})

				Convey("Then the rating is overwritten, not duplicated", func() {
					So(err, ShouldBeNil)
					So(replaced, ShouldBeFalse)
					So(store.Count(ctx), ShouldEqual, 1)

					rows, err := store.ListByUser(ctx, "u1")
					So(err, ShouldBeNil)
					So(len(rows), ShouldEqual, 1)
					So(rows[0].Rating, ShouldEqual, model.RatingDown)
				})
			})
		})

		Convey("When a record is invalid", func() {
			_, err := store.Upsert(ctx, model.FeedbackRecord{UserID: "u1"})

			Convey("Then ErrInvalidRecord is returned", func() {
				So(err, ShouldWrap, repository.ErrInvalidRecord)
			})
		})

		Convey("When listing a user with no ratings", func() {
			rows, err := store.ListByUser(ctx, "nobody")

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})
		})
	})
}
