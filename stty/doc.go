// Package stty switches the controlling terminal between line and raw
// (no echo, character-at-a-time) input by running stty through a shell
// with the terminal attached as standard input.
//
// Support is probed once per Controller with "stty -a". A raw Session
// restores the terminal when closed or when the process is interrupted.
package stty
