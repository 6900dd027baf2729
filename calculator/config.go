package calculator

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/rbf"
	"github.com/mehranjafarii/heat-simulation-fdm/solver"
)

const DefaultConfigPath = "conf/config.ini"

type Config struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int

	PivotTolerance float64
	Regularization float64
	Workers        int

	Limits   model.Limits
	Defaults model.SimulationInput

	LogLevel string
}

// LoadConfig reads path. A missing or unreadable file yields the defaults.
func LoadConfig(path string) Config {
	file, err := ini.Load(path)
	if err != nil {
		log.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Warn("config file not loaded, using defaults")
		file = ini.Empty()
	}
	return loadCfg(file)
}

// DefaultConfig is the configuration used when no file is given.
func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Config {
	server := file.Section("server")
	solverSec := file.Section("solver")
	rbfSec := file.Section("rbf")
	limits := file.Section("limits")
	defaults := file.Section("defaults")

	return Config{
		Addr:            server.Key("Addr").MustString(":9000"),
		ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
		WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),

		PivotTolerance: solverSec.Key("PivotTolerance").MustFloat64(solver.DefaultTolerance),
		Regularization: rbfSec.Key("Regularization").MustFloat64(rbf.DefaultRegularization),
		Workers:        rbfSec.Key("Workers").MustInt(1),

		Limits: model.Limits{
			SigmaMin: limits.Key("SigmaMin").MustFloat64(model.DefaultLimits.SigmaMin),
			SigmaMax: limits.Key("SigmaMax").MustFloat64(model.DefaultLimits.SigmaMax),
			NxMin:    limits.Key("NxMin").MustInt(model.DefaultLimits.NxMin),
			NxMax:    limits.Key("NxMax").MustInt(model.DefaultLimits.NxMax),
			NyMin:    limits.Key("NyMin").MustInt(model.DefaultLimits.NyMin),
			NyMax:    limits.Key("NyMax").MustInt(model.DefaultLimits.NyMax),
		},
		Defaults: model.SimulationInput{
			Top:    defaults.Key("Top").MustFloat64(100),
			Bottom: defaults.Key("Bottom").MustFloat64(0),
			Vnode:  defaults.Key("Vnode").MustFloat64(0),
			Sigma:  defaults.Key("Sigma").MustFloat64(0.8),
			Nx:     defaults.Key("Nx").MustInt(160),
			Ny:     defaults.Key("Ny").MustInt(120),
		},

		LogLevel: file.Section("log").Key("Level").MustString("info"),
	}
}
