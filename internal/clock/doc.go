// Package clock provides the time source used by device energy accounting.
//
// Core logic never calls time.Now() directly. Devices are constructed with a
// Clock so that session lengths, and therefore energy figures, can be driven
// deterministically in tests:
//
//	clk := clock.NewManual(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
//	bulb, _ := device.NewBulb(reg, clk, device.BulbOptions{...})
//	bulb.TurnOn()
//	clk.Advance(time.Hour)
//	bulb.TurnOff() // books one hour of rated power
//
// Production code uses clock.Real().
package clock
