// Firmware entry: resolves the board profile, brings up the peripherals and
// runs the generator loop forever.
package main

import (
	"context"
	"time"

	"funcgen-go/bus"
	"funcgen-go/engine"
	"funcgen-go/internal/platform"
	"funcgen-go/services/config"
	"funcgen-go/services/monitor"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, platform.DefaultBoard)
	b := bus.NewBus(4)

	set, err := config.NewConfigService().Start(ctx, b.NewConnection("config"))
	if err != nil {
		println("Error:", err.Error())
		return
	}
	board, err := platform.Setup(set)
	if err != nil {
		println("Error:", err.Error())
		return
	}
	board.Log.Info("board ready", "board", board.Name)

	if err := monitor.New(board.Log.Named("monitor"), set.Heartbeat).Start(ctx, b.NewConnection("monitor")); err != nil {
		board.Log.Error("monitor start failed", "err", err)
		return
	}

	eng := engine.New(set.Engine(), board.Clock, board.Out, board.Display, board.Inputs,
		engine.WithBus(b.NewConnection("engine")),
		engine.WithLogger(board.Log.Named("engine")))
	_ = eng.Run(ctx)
}
