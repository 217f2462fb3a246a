// Package useragent provides a small rotating pool of realistic desktop
// User-Agent strings, used by the fetcher so repeated requests to the same
// host don't all present an identical client fingerprint.
package useragent

import (
	"math/rand"
)

var desktopPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// Random returns a pseudo-random User-Agent string from the desktop pool.
func Random() string {
	return desktopPool[rand.Intn(len(desktopPool))]
}

// RandomDesktop is an alias of Random; this package only maintains a
// desktop pool.
func RandomDesktop() string {
	return Random()
}
