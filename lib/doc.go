// Package lib provide useful functions and features that are not
// particularly tied up with the tree algorithm: settings, statistical
// histograms and small helpers. Package shall not depend on anything
// other than the standard library.
package lib
