package filter_test

import (
	"testing"

	filter "github.com/okian/courserec/internal/domain/filter"
	model "github.com/okian/courserec/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func catalog() []model.Course {
	return []model.Course{
		{ID: "1", Category: "AI", SkillLevel: model.SkillBeginner, Pricing: model.PricingFree, Duration: "4 weeks"},
		{ID: "2", Category: "AI", SkillLevel: model.SkillAdvanced, Pricing: model.PricingPaid, Duration: "12 weeks"},
		{ID: "3", Category: "Web Dev", SkillLevel: model.SkillBeginner, Pricing: model.PricingFree, Duration: "8 weeks"},
		{ID: "4", Category: "Blockchain", SkillLevel: model.SkillAdvanced, Pricing: model.PricingFree, Duration: "10 weeks"},
	}
}

func TestConjunctiveFiltering(t *testing.T) {
	Convey("Given a catalog and a fully matchable query", t, func() {
		f := filter.New()
		q := model.PreferenceQuery{
			Category: "AI",
			Skill:    model.SkillBeginner,
			Duration: model.DurationShort,
			Pricing:  model.PreferFree,
		}

		Convey("When filtering", func() {
			out, rel := f.Admissible(catalog(), q)

			Convey("Then exactly the matching course is admissible with no relaxation", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Course.ID, ShouldEqual, "1")
				So(out[0].Position, ShouldEqual, 0)
				So(rel.Depth(), ShouldEqual, 0)
			})
		})

		Convey("When the pricing preference is Both", func() {
			q.Pricing = model.PreferBoth
			q.Skill = model.SkillAdvanced
			q.Duration = model.DurationLong
			out, rel := f.Admissible(catalog(), q)

			Convey("Then both Free and Paid courses are admissible", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Course.ID, ShouldEqual, "2")
				So(rel.Depth(), ShouldEqual, 0)
			})
		})

		Convey("When the category is the wildcard", func() {
			q.Category = model.CategoryAny
			out, _ := f.Admissible(catalog(), q)

			Convey("Then all categories are candidates", func() {
				So(len(out), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("And category matching is case-insensitive", func() {
			q.Category = "ai"
			out, rel := f.Admissible(catalog(), q)
			So(len(out), ShouldEqual, 1)
			So(rel.Depth(), ShouldEqual, 0)
		})
	})
}

func TestRelaxationOrder(t *testing.T) {
	Convey("Given a single Blockchain/Advanced/Free/Long course", t, func() {
		f := filter.New()

		Convey("When a Beginner/Short query targets Blockchain", func() {
			q := model.PreferenceQuery{
				Category: "Blockchain",
				Skill:    model.SkillBeginner,
				Duration: model.DurationShort,
				Pricing:  model.PreferFree,
			}
			out, rel := f.Admissible(catalog(), q)

			Convey("Then duration and skill are dropped but category is kept", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Course.ID, ShouldEqual, "4")
				So(rel.Duration, ShouldBeTrue)
				So(rel.Pricing, ShouldBeTrue)
				So(rel.Skill, ShouldBeTrue)
			})
		})

		Convey("When only the duration is off", func() {
			q := model.PreferenceQuery{
				Category: "Blockchain",
				Skill:    model.SkillAdvanced,
				Duration: model.DurationShort,
				Pricing:  model.PreferFree,
			}
			out, rel := f.Admissible(catalog(), q)

			Convey("Then relaxation stops after dropping duration", func() {
				So(len(out), ShouldEqual, 1)
				So(rel, ShouldResemble, filter.Relaxation{Duration: true})
				So(rel.Depth(), ShouldEqual, 1)
			})
		})

		Convey("When the category has no courses at all", func() {
			q := model.PreferenceQuery{
				Category: "Quantum",
				Skill:    model.SkillBeginner,
				Duration: model.DurationShort,
				Pricing:  model.PreferFree,
			}
			out, rel := f.Admissible(catalog(), q)

			Convey("Then the set stays empty even at full relaxation", func() {
				So(out, ShouldBeEmpty)
				So(rel.Depth(), ShouldEqual, 3)
			})
		})
	})

	Convey("Given any query against a category with courses", t, func() {
		f := filter.New()
		queries := []model.PreferenceQuery{
			{Category: "AI", Skill: model.SkillBeginner, Duration: model.DurationShort, Pricing: model.PreferFree},
			{Category: "AI", Skill: model.SkillIntermediate, Duration: model.DurationLong, Pricing: model.PreferPaid},
			{Category: "Web Dev", Skill: model.SkillAdvanced, Duration: model.DurationShort, Pricing: model.PreferPaid},
		}

		Convey("Then relaxation always yields a non-empty subset", func() {
			for _, q := range queries {
				out, _ := f.Admissible(catalog(), q)
				So(out, ShouldNotBeEmpty)
			}
		})
	})
}

func TestShortMaxWeeksOption(t *testing.T) {
	Convey("Given a filter with a raised short bound", t, func() {
		f := filter.New(filter.WithShortMaxWeeks(8))
		q := model.PreferenceQuery{
			Category: "Web Dev",
			Skill:    model.SkillBeginner,
			Duration: model.DurationShort,
			Pricing:  model.PreferFree,
		}

		Convey("Then an 8 week course counts as Short", func() {
			out, rel := f.Admissible(catalog(), q)
			So(len(out), ShouldEqual, 1)
			So(out[0].Course.ID, ShouldEqual, "3")
			So(rel.Depth(), ShouldEqual, 0)
		})
	})
}
