package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("walker"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors use the custom namespace", func() {
				manager.RecordCrawl("bulk", "ok")
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_walker_crawls_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording page fetches", func() {
			m.RecordPageFetched(KindListing, "ok", 12)
			m.RecordPageFetched(KindListing, "ok", 20)
			m.RecordPageFetched(KindEvent, "network", 3)

			Convey("Then counters are labelled by kind and outcome", func() {
				So(value(m.pagesFetched.WithLabelValues(KindListing, "ok")), ShouldEqual, 2)
				So(value(m.pagesFetched.WithLabelValues(KindEvent, "network")), ShouldEqual, 1)
			})
		})

		Convey("When recording extraction results", func() {
			m.RecordFightsExtracted(3)
			m.RecordFightsExtracted(0)
			m.RecordBlockDropped(ReasonMalformed)
			m.RecordBlockDropped(ReasonDuplicate)
			m.RecordBlockDropped(ReasonDuplicate)

			Convey("Then totals match", func() {
				So(value(m.fightsExtracted), ShouldEqual, 3)
				So(value(m.blocksDropped.WithLabelValues(ReasonDuplicate)), ShouldEqual, 2)
				So(value(m.blocksDropped.WithLabelValues(ReasonMalformed)), ShouldEqual, 1)
			})
		})

		Convey("When recording crawl gauges", func() {
			m.UpdateWalkSize(4)
			m.UpdateCatalogSize(2)
			m.RecordEventCataloged()
			m.RecordCrawlDuration(1500)
			m.UpdateSystem(1024, 7)

			Convey("Then the gauges hold the last value", func() {
				So(value(m.walkPagesLastRun), ShouldEqual, 4)
				So(value(m.catalogSizeLastRun), ShouldEqual, 2)
				So(value(m.eventsCataloged), ShouldEqual, 1)
				So(value(m.systemGoroutineCount), ShouldEqual, 7)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithMetricsEnabled(false))

		Convey("When recording", func() {
			m.RecordFightsExtracted(5)
			m.RecordHTTPRequest("events", "GET", "200", 1)

			Convey("Then nothing is counted", func() {
				So(value(m.fightsExtracted), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then helpers do not panic", func() {
			So(func() {
				RecordPageFetched(KindLanding, "ok", 5)
				RecordFightsExtracted(1)
				RecordBlockDropped(ReasonMalformed)
				RecordEventCataloged()
				RecordCrawl("single", "not_found")
				RecordCrawlDuration(10)
				UpdateWalkSize(1)
				UpdateCatalogSize(1)
				RecordHTTPRequest("event", "GET", "404", 2)
				UpdateSystem(2048, 3)
			}, ShouldNotPanic)
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

// value reads the current value of a counter or gauge.
func value(m prometheus.Metric) float64 {
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		return -1
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return pb.Gauge.GetValue()
}
