package intcode

// Option configures a Machine when passed to New.
type Option interface{ apply(m *Machine) }

// Options combines any number of options into one, skipping nils.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

// WithInput queues values as the machine's first inputs.
func WithInput(values ...int) Option { return inputOption(values) }

// WithStepLimit sets a ceiling on the number of instructions a single Run may
// execute before failing with a StepLimitError; 0 disables the ceiling.
func WithStepLimit(limit int) Option { return stepLimitOption(limit) }

// WithMemLimit limits the machine to limit memory cells; 0 disables the
// limit.
func WithMemLimit(limit uint) Option { return memLimitOption(limit) }

// WithPageSize sets the size of newly allocated memory pages.
func WithPageSize(size uint) Option { return pageSizeOption(size) }

// WithLogf installs a trace logging function, called for every executed
// instruction and every suspension.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type options []Option
type inputOption []int
type stepLimitOption int
type memLimitOption uint
type pageSizeOption uint
type withLogfn func(mess string, args ...interface{})

func (opts options) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

func (values inputOption) apply(m *Machine) { m.SupplyInput(values...) }
func (lim stepLimitOption) apply(m *Machine) { m.stepLimit = int(lim) }
func (lim memLimitOption) apply(m *Machine)  { m.mem.Limit = uint(lim) }
func (size pageSizeOption) apply(m *Machine) { m.mem.PageSize = uint(size) }
func (logfn withLogfn) apply(m *Machine)     { m.logfn = logfn }
