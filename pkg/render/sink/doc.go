// Package sink renders computed card layouts into output formats.
//
// Each sink consumes a cards.Layout, the pure output of the layout engine,
// and produces document bytes. Sinks never recompute placement; all geometry
// decisions were made upstream.
package sink
