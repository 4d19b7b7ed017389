package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/courserec/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.CatalogPath, convey.ShouldEqual, "data/courses.csv")
			convey.So(cfg.TopK, convey.ShouldEqual, 10)
			convey.So(cfg.MaxLimit, convey.ShouldEqual, 50)
			convey.So(cfg.SimilarityWeight, convey.ShouldEqual, 0.7)
			convey.So(cfg.CategoryWeight, convey.ShouldEqual, 0.3)
			convey.So(cfg.FeedbackCap, convey.ShouldEqual, 0.2)
			convey.So(cfg.ShortMaxWeeks, convey.ShouldEqual, 6)
			convey.So(cfg.FeedbackQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
		})
	})
}
