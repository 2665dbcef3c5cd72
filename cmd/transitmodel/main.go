// Command transitmodel demonstrates the library end to end: it assembles a
// small network with the fluent builder, runs the consistency/enhancement
// pipeline, applies a handful of rewrite rules, and prints the resulting
// model's shape.
package main

import (
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/transitmodel/transit-model/enhance"
	"github.com/transitmodel/transit-model/logging"
	"github.com/transitmodel/transit-model/model"
	"github.com/transitmodel/transit-model/modelbuilder"
	"github.com/transitmodel/transit-model/rules"
)

func main() {
	dev := flag.Bool("dev", false, "use a development logger (console-encoded, debug level)")
	flag.Parse()

	if *dev {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logging.SetLogger(l.Sugar())
	}

	start := model.NewDate(2024, time.January, 1)
	end := model.NewDate(2024, time.December, 31)

	b := modelbuilder.New(start, end)
	b.Network("N1", func(n *model.Network) { n.Name = "Demo Network" })
	m, err := b.
		Vj("VJ1", func(vj *modelbuilder.VehicleJourneyBuilder) {
			vj.Route("R1").Network("N1").
				St("stop-a", model.NewTime(8, 0, 0), model.NewTime(8, 1, 0)).
				St("stop-b", model.NewTime(8, 10, 0), model.NewTime(8, 11, 0)).
				St("stop-c", model.NewTime(8, 20, 0), model.NewTime(8, 21, 0))
		}).
		Vj("VJ2", func(vj *modelbuilder.VehicleJourneyBuilder) {
			vj.Route("R1").
				St("stop-a", model.NewTime(9, 0, 0), model.NewTime(9, 1, 0)).
				St("stop-b", model.NewTime(9, 10, 0), model.NewTime(9, 11, 0)).
				St("stop-c", model.NewTime(9, 20, 0), model.NewTime(9, 21, 0))
		}).
		Build()
	if err != nil {
		logging.L().Fatalw("failed to build model", "error", err)
	}

	collections := m.IntoCollections()
	enhance.OrderStopTimes(collections)
	enhance.InferPickupDropoff(collections)
	enhance.PurgeDanglingCommentLinks(collections)
	enhance.Compact(collections)

	var report rules.Report
	rules.Apply(collections, rules.Input{
		PropertyEdits: []rules.PropertyEditRow{
			{ObjectType: model.ObjectRoute, ObjectID: "R1", PropertyName: "name", NewValue: "Demo Line 1"},
		},
	}, &report)

	m, err = model.New(collections)
	if err != nil {
		logging.L().Fatalw("model invalid after rule application", "error", err)
	}

	logging.L().Infow("model built",
		"vehicle_journeys", m.Collections().VehicleJourneys.Len(),
		"routes", m.Collections().Routes.Len(),
		"stop_points", m.Collections().StopPoints.Len(),
		"rule_errors", len(report.Errors),
		"rule_warnings", len(report.Warnings),
	)
}
