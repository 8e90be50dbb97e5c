// Package input turns Linux input device key presses into Back intents.
//
// Handheld devices report their hardware back button through evdev rather
// than the terminal, so a Reader watches the device node directly and calls
// Nav.Back for each press.
package input
