// Package clientip resolves the originating client address of a request.
//
// CF-Connecting-IP, X-Forwarded-For and X-Real-IP are honoured only when the
// service runs behind a proxy that sets them; otherwise any client could
// choose its own address. The same switch that trusts X-Forwarded-Host for
// tenant resolution controls this.
//
//	r.Use(clientip.Middleware(cfg.TrustForwardedHost))
//	ip := clientip.FromContext(r.Context())
package clientip
