// Package analysis extracts quantitative summaries from recorded
// electrochemical series.
//
// The package dispatches on technique category:
//
//   - [FindPeaks]: local-maximum detection for voltammograms
//   - [LinearFit]: ordinary least squares with coefficient of determination
//   - [FitRandles]: Levenberg-Marquardt fit of a Randles equivalent circuit
//   - [Analyze]: category dispatch producing a [Result]
//
// # Neutral results
//
// A series with fewer than two points yields a Result with all
// category branches nil rather than an error, so callers can analyze
// unconditionally after any run:
//
//	res, err := analysis.Analyze(desc, ser.Snapshot(), params)
//	if res.Voltammetry != nil {
//	    // peaks were searched
//	}
package analysis
