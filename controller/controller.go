package controller

import (
	"nosdois-service/gateway"
	"nosdois-service/suggest"
)

var (
	Gateway *gateway.Gateway
	Suggest *suggest.Client
)

func Init(gw *gateway.Gateway, sg *suggest.Client) {
	Gateway = gw
	Suggest = sg
}
