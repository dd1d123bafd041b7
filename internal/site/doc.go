// Package site implements the page components of the Maderas brochure
// site: Header, Hero, Features, Products and Contact, composed by Page.
//
// Each component owns its state and renders itself with gomponents.
// Side effects that leave a component go through injected seams:
// scrolling through a Navigator, contact submission through a Gateway,
// and timers through a Scheduler.
package site
