package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			So(func() {
				RecordRecommendationRequest()
				RecordRecommendationsServed(5)
				RecordEmptyResult()
				RecordRankingLatency(12.5)
				RecordEncodingLatency(3.2)
				RecordRelaxationDepth(2)
			}, ShouldNotPanic)
		})

		Convey("When recording feedback metrics", func() {
			So(func() {
				RecordFeedbackProcessed()
				RecordFeedbackDuplicate()
				RecordFeedbackUpsert()
				UpdateFeedbackRecords(10)
			}, ShouldNotPanic)
		})

		Convey("When updating operational gauges", func() {
			So(func() {
				UpdateCatalogSize(120)
				UpdateCatalogVersion(3)
				UpdateVocabularySize(900)
				UpdateQueueSize(0)
				UpdateQueueCapacity(1000)
				UpdateQueueUtilization(0.0)
				UpdateWorkerCount(4)
				UpdateWorkerActiveCount(4)
			}, ShouldNotPanic)
		})

		Convey("When recording error metrics", func() {
			So(func() {
				RecordRankingError()
				RecordFeedbackError()
				RecordErrorByComponent("worker", "upsert_error")
				RecordErrorByType("upsert_error", "high")
				RecordErrorByEndpoint("feedback", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 1.0)
			}, ShouldNotPanic)
		})

		Convey("Then the exposition registry should be available", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
