/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"container/list"
	"fmt"
	"math"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

// Controller ...
type Controller interface {
	Render(*metrics)
	Resize()
}

type statsController struct {
	withRefreshHistograms bool
	Grid                  *ui.Grid
	SummaryTable          *widgets.Table
	ObjectsPlot           *widgets.Plot
	ObjectsPlotData       []*list.List
	CyclesPlot            *widgets.Plot
	CyclesPlotData        []*list.List
	AvgDurationPlot       *widgets.Plot
	AvgDurationPlotData   []*list.List
	MemoryPlot            *widgets.Plot
	MemoryPlotData        []*list.List
	tui                   Tui
}

// Tui ...
type Tui interface {
	TerminalDimensions() (int, int)
	Render(items ...ui.Drawable)
	Init() error
	Close()
	PollEvents() <-chan ui.Event
}

type tui struct{}

func (t tui) TerminalDimensions() (int, int) {
	return ui.TerminalDimensions()
}
func (t tui) Render(items ...ui.Drawable) {
	ui.Render(items...)
}
func (t tui) Init() error {
	return ui.Init()
}
func (t tui) Close() {
	ui.Close()
}
func (t tui) PollEvents() <-chan ui.Event {
	return ui.PollEvents()
}

func (p *statsController) Resize() {
	p.resize()
	p.tui.Render(p.Grid)
}

func (p *statsController) resize() {
	termWidth, termHeight := p.tui.TerminalDimensions()
	p.Grid.SetRect(0, 0, termWidth, termHeight)
}

func enqueueDequeue(l *list.List, v interface{}, max int) {
	if l.Len() >= max {
		l.Remove(l.Front())
	}
	l.PushBack(v)
}
func toFloats(l *list.List) []float64 {
	a := make([]float64, l.Len())
	i := 0
	for e := l.Front(); e != nil; e = e.Next() {
		a[i] = e.Value.(float64)
		i++
	}
	return a
}

func updatePlot(
	plot *widgets.Plot,
	data *[]*list.List,
	dataLength int,
	newData []float64,
	newTitle string,
) {
	plot.Title = newTitle
	nbLines := len(newData)
	for i := 0; i < nbLines; i++ {
		enqueueDequeue((*data)[i], newData[i], dataLength)
	}
	plot.Data = make([][]float64, nbLines)
	for i := 0; i < nbLines; i++ {
		plot.Data[i] = toFloats((*data)[i])
	}
}

func (p *statsController) Render(ms *metrics) {
	uptime, _ := time.ParseDuration(fmt.Sprintf("%.4fh", ms.uptimeHours))
	lastRefresh := "never"
	if ms.lastRefreshAt > 0 {
		lastRefresh = time.Unix(int64(ms.lastRefreshAt), 0).Format("15:04:05")
	}
	p.SummaryTable.Rows = [][]string{
		{"[sapd stats](mod:bold)", fmt.Sprintf("[ at %s](mod:bold)", time.Now().Format("15:04:05"))},
		{"Cached objects", fmt.Sprintf("%d", ms.cachedObjects)},
		{"Uptime", uptime.String()},
		{"Refreshes", fmt.Sprintf("%d", ms.totalCycles())},
		{"  failed", fmt.Sprintf("%d", ms.failedCycles())},
		{"Last refresh", lastRefresh},
	}

	updatePlot(
		p.ObjectsPlot,
		&p.ObjectsPlotData,
		objectsPlotDataLength,
		[]float64{float64(ms.cachedObjects)},
		fmt.Sprintf(" Cached objects: %d ", ms.cachedObjects))

	if p.withRefreshHistograms {
		okCycles := ms.cyclesByResult["ok"]
		failedCycles := ms.failedCycles()
		pOK := math.Round(float64(okCycles) * 100 / float64(okCycles+failedCycles))
		updatePlot(
			p.CyclesPlot,
			&p.CyclesPlotData,
			cyclesPlotDataLength,
			[]float64{float64(okCycles), float64(failedCycles)},
			fmt.Sprintf(
				" %d ok / %d failed refreshes (%.0f%% ok) ", okCycles, failedCycles, pOK),
		)

		avgDuration := ms.refresh.avgDuration * 1000
		updatePlot(
			p.AvgDurationPlot,
			&p.AvgDurationPlotData,
			avgDurationPlotDataLength,
			[]float64{avgDuration},
			fmt.Sprintf(" Avg. refresh duration: %.0f ms ", avgDuration),
		)
	}

	memReservedS, memReserved := byteCountBinary(ms.memstats.sysBytes)
	memInUseS, memInUse := byteCountBinary(ms.memstats.heapInUseBytes + ms.memstats.stackInUseBytes)
	updatePlot(
		p.MemoryPlot,
		&p.MemoryPlotData,
		memoryPlotDataLength,
		[]float64{memReserved, memInUse},
		fmt.Sprintf(" Memory: %s reserved, %s in use ", memReservedS, memInUseS))

	p.tui.Render(p.Grid)
}

func initPlot(
	plot *widgets.Plot,
	data *[]*list.List,
	dataLength int,
	labels []string,
	title string,
) {
	nbLines := len(labels)
	for i := 0; i < nbLines; i++ {
		(*data)[i] = list.New()
	}
	for i := 0; i < dataLength; i++ {
		for j := 0; j < nbLines; j++ {
			(*data)[j].PushBack(0.)
		}
	}
	plot.Title = title
	plot.PaddingTop = 1
	plot.DataLabels = labels
}

var objectsPlotDataLength int
var cyclesPlotDataLength int
var avgDurationPlotDataLength int
var memoryPlotDataLength int

func (p *statsController) initUI() {
	p.resize()

	gridWidth := p.Grid.GetRect().Dx()
	avgDurationPlotWidthPercent := .6
	memoryPlotWidthPercent := avgDurationPlotWidthPercent
	objectsPlotWidthPercent := 1.
	cyclesPlotWidthPercent := 0.
	if p.withRefreshHistograms {
		memoryPlotWidthPercent = 1.
		objectsPlotWidthPercent = .5
		cyclesPlotWidthPercent = .5
	}

	p.SummaryTable.Title = " Exit: q, Esc or Ctrl-C "
	p.SummaryTable.PaddingTop = 1

	objectsPlotDataLength = int(float64(gridWidth) * (objectsPlotWidthPercent - .025))
	p.ObjectsPlotData = make([]*list.List, 1)
	initPlot(
		p.ObjectsPlot,
		&p.ObjectsPlotData,
		objectsPlotDataLength,
		[]string{"objects"},
		" Cached objects ")

	if p.withRefreshHistograms {
		cyclesPlotDataLength = int(float64(gridWidth) * (cyclesPlotWidthPercent - .025))
		p.CyclesPlotData = make([]*list.List, 2)
		initPlot(
			p.CyclesPlot,
			&p.CyclesPlotData,
			cyclesPlotDataLength,
			[]string{"ok", "failed"},
			" Refresh cycles ")

		avgDurationPlotDataLength = int(float64(gridWidth) * (avgDurationPlotWidthPercent - .025))
		p.AvgDurationPlotData = make([]*list.List, 1)
		initPlot(
			p.AvgDurationPlot,
			&p.AvgDurationPlotData,
			avgDurationPlotDataLength,
			[]string{"avg"},
			" Avg. refresh duration ")
	}

	memoryPlotDataLength = int(float64(gridWidth) * (memoryPlotWidthPercent - .025))
	p.MemoryPlotData = make([]*list.List, 2)
	initPlot(
		p.MemoryPlot,
		&p.MemoryPlotData,
		memoryPlotDataLength,
		[]string{"reserved", "in use"},
		" Memory reserved/in use ")

	if p.withRefreshHistograms {
		p.Grid.Set(
			ui.NewRow(
				.25,
				ui.NewCol(1-avgDurationPlotWidthPercent, p.SummaryTable),
				ui.NewCol(avgDurationPlotWidthPercent, p.AvgDurationPlot),
			),
			ui.NewRow(
				.5,
				ui.NewCol(objectsPlotWidthPercent, p.ObjectsPlot),
				ui.NewCol(1-objectsPlotWidthPercent, p.CyclesPlot),
			),
			ui.NewRow(
				.25,
				ui.NewCol(memoryPlotWidthPercent, p.MemoryPlot),
			),
		)
		return
	}

	p.Grid.Set(
		ui.NewRow(
			.33,
			ui.NewCol(1-memoryPlotWidthPercent, p.SummaryTable),
			ui.NewCol(memoryPlotWidthPercent, p.MemoryPlot),
		),
		ui.NewRow(
			.66,
			ui.NewCol(objectsPlotWidthPercent, p.ObjectsPlot),
		),
	)
}

func newStatsController(withRefreshHistograms bool, tui Tui) Controller {
	// xterm color reference https://jonasjacek.github.io/colors/
	ui.Theme.Block.Title.Fg = ui.ColorGreen
	ctl := &statsController{
		withRefreshHistograms: withRefreshHistograms,
		Grid:                  ui.NewGrid(),
		SummaryTable:          widgets.NewTable(),
		ObjectsPlot:           widgets.NewPlot(),
		MemoryPlot:            widgets.NewPlot(),
		tui:                   tui,
	}
	if withRefreshHistograms {
		ctl.CyclesPlot = widgets.NewPlot()
		ctl.AvgDurationPlot = widgets.NewPlot()
	}
	ctl.initUI()
	return ctl
}
