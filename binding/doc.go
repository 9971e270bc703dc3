// Package binding keeps a live editor view in step with declarative props.
//
// A Core is handed fresh Props on every render. It mounts a view on first
// render, patches the live view with only what changed on later renders, and
// tears it down on unmount. Update events from the view are routed to the
// props' callbacks, always read from the latest props.
package binding
