// package stream consumes the live discovery-progress event stream.
//
// The backend pushes newline-delimited JSON frames describing zero-or-more concurrent
// discovery runs (one ad-hoc manual run plus zero-or-more named scheduler runs). The
// Subscriber owns exactly one streaming connection per Open call and the Tracker
// folds frames into display state: last frame wins, terminal frames remove the run.
//
// There is no reconnect logic; when the transport closes, the frame channel closes
// and re-subscribing is the owner's explicit decision.
package stream
