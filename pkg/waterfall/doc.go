// Package waterfall builds waterfall charts: a sequence of cumulative values
// drawn as a chain of bars showing the change from step to step, bridged by
// connector lines and closed by a final-value bar.
//
// # Overview
//
// A [Chart] holds immutable input: the cumulative step values, optional step
// names, the metric name shown on the value axis and the label of the
// synthetic trailing bar. Everything else is derived on demand:
//
//	values ──▶ [Transform] ──▶ []StepRecord ──▶ [ResolveColors] / [ResolveLabels] ──▶ [Chart.Plot]
//
// # Step Table
//
// [Transform] turns n cumulative values into n+1 [StepRecord] rows. Row i
// carries the step's cumulative Value, its Delta from the previous step and
// the Base the bar is stacked on. The first row has Base 0 and Delta equal to
// its Value; a trailing row repeats the last value with Base 0:
//
//	values = [100, 120, 90, 130]
//
//	Label        Value  Delta  Base
//	Step_1         100    100     0
//	Step_2         120     20   100
//	Step_3          90    -30   120
//	Step_4         130     40    90
//	Final Value    130    130     0
//
// The table is recomputed on every [Chart.Table] or [Chart.Plot] call and is
// never cached or mutated.
//
// # Roles and Colors
//
// Every row has a [Role] that depends only on its position and the sign of
// its delta: the first row is [RoleStart], the last is [RoleEnd], interior
// rows are [RolePositive] when Delta >= 0 and [RoleNegative] otherwise. A
// [Palette] maps each role to a bar and a text color; empty fields fall back
// to [DefaultPalette].
//
// # Labels
//
// [LabelMode] selects what is written above each bar. It is a closed tagged
// variant built with [ValueLabels] (the zero value), [NoLabels], [FixedLabel],
// [ListLabels] or [ListLabelsOf]. [ParseLabelMode] reads the same modes from
// command-line or configuration text.
//
// # Rendering
//
// [Chart.Plot] draws onto any [render.Axes]. When no surface is given it
// creates a [render.Figure], which the sinks in package render/sink export as
// SVG, PNG, PDF or JSON. Labels and colors are resolved and validated before
// the first draw call, so a bad option never leaves a half-drawn surface.
//
// # Concurrency
//
// A Chart is safe for concurrent use. Plotting onto the same surface from
// several goroutines is not.
package waterfall
