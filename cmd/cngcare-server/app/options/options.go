package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/Afox1/cngcare/internal/cngcare"
	"github.com/Afox1/cngcare/pkg/app"
	"github.com/Afox1/cngcare/pkg/log"
	"github.com/Afox1/cngcare/pkg/options"
)

type ServerOptions struct {
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	SheetsOptions  *options.SheetsOptions  `json:"sheets" mapstructure:"sheets"`
	SessionOptions *options.SessionOptions `json:"session" mapstructure:"session"`
	HistoryOptions *options.HistoryOptions `json:"history" mapstructure:"history"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	MqttOptions    *options.MqttOptions    `json:"mqtt" mapstructure:"mqtt"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*ServerOptions)(nil)

func NewServerOptions() *ServerOptions {
	o := &ServerOptions{
		HttpOptions:    options.NewHttpOptions(),
		SheetsOptions:  options.NewSheetsOptions(),
		SessionOptions: options.NewSessionOptions(),
		HistoryOptions: options.NewHistoryOptions(),
		S3Options:      options.NewS3Options(),
		MqttOptions:    options.NewMqttOptions(),
		Log:            log.NewOptions(),
	}

	return o
}

func (o *ServerOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.SheetsOptions.AddFlags(fss.FlagSet("sheets"))
	o.SessionOptions.AddFlags(fss.FlagSet("session"))
	o.HistoryOptions.AddFlags(fss.FlagSet("history"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *ServerOptions) Complete() error {
	if o.Log.Name == "" {
		o.Log.Name = "cngcare-server"
	}
	return nil
}

func (o *ServerOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.SheetsOptions.Validate()...)
	errs = append(errs, o.SessionOptions.Validate()...)
	errs = append(errs, o.HistoryOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ServerOptions) Config() (*cngcare.Config, error) {
	return &cngcare.Config{
		HttpOptions:    o.HttpOptions,
		SheetsOptions:  o.SheetsOptions,
		SessionOptions: o.SessionOptions,
		HistoryOptions: o.HistoryOptions,
		S3Options:      o.S3Options,
		MqttOptions:    o.MqttOptions,
	}, nil
}
