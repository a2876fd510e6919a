// Package road provides the centerline geometry used by the steering engine.
//
// The upstream perception stage samples the road at fixed vertical scan
// rows, each row yielding a horizontal offset, so points are (y, x) pairs
// and lines are parameterized over the vertical axis:
//
//	x = Slope*y + Intercept
//
// Keep that orientation in mind when reading the fit and residual code;
// transposing the axes is the classic mistake here.
//
//   - [Fit]: least-squares line through a point set
//   - [TrimOutliers]: iterative robust fit discarding one outlier per pass
package road
