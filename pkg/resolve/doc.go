// Package resolve maps wiki article titles to census index keys.
//
// Resolution runs in stages and stops at the first that succeeds:
//
//   - direct: the normalized title is an index key
//   - suffix: appending a place-type designator such as " city" or " CDP"
//     to the place name gives exactly one key, or several keys that the
//     article's own FIPS code narrows to one
//   - fuzzy: exactly one key is at least as similar as the threshold
//
// Article text is only needed for FIPS disambiguation and is fetched through
// a TextProvider at most once.
package resolve
