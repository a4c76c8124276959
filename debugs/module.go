package debugs

import (
	"github.com/satorilang/satori/logs"
)

type Module struct {
	logs.Module
}
