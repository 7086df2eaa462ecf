package application

import "expvar"

// Published on /api/debug/vars.
var (
	ordersPlaced    = expvar.NewInt("orders_placed")
	checkoutAborted = expvar.NewMap("checkout_aborted")
)
