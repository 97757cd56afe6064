// Package canon provides the deterministic value model and canonical JSON
// encoder for digest payloads.
//
// This package contains value types and serialization only. All other
// internal packages import canon; canon imports nothing internal. This
// ensures the value model remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - NO float types anywhere - degree values enter the model already
//     fixed-point encoded (int64, degrees x 10^4)
//   - Every Object carries an explicit Kind assigned at construction;
//     serialization key order dispatches on the Kind, never on shape
//     inference
//   - Absent data is expressed by not setting a field, never by null
package canon
