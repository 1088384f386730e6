package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hnflee/datafu/pkg/config/xconf"
	"github.com/hnflee/datafu/pkg/observability/xlog"
	"github.com/hnflee/datafu/pkg/observability/xmetrics"
	"github.com/hnflee/datafu/pkg/sampling/xfilter"
	"github.com/hnflee/datafu/pkg/sampling/xhashcode"
	"github.com/hnflee/datafu/pkg/sampling/xrecord"
	"github.com/hnflee/datafu/pkg/sampling/xsampling"
	"github.com/hnflee/datafu/pkg/util/xfile"
)

func createCommands() []*cli.Command {
	return []*cli.Command{
		createSampleCommand(),
		createHashCommand(),
		createSeedCommand(),
	}
}

func createSampleCommand() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "过滤输入，只输出被采中的记录",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "作业文件（.yaml/.yml/.json），命令行参数优先"},
			&cli.StringSliceFlag{Name: "salt", Usage: "盐值，可重复；多个盐值按 --mode 组合（默认 " + xsampling.DefaultSalt + "）"},
			&cli.StringFlag{Name: "mode", Usage: "多个盐值的组合方式 all/any（交集/并集）"},
			&cli.StringFlag{Name: "rate", Aliases: []string{"r"}, Usage: "采样率，如 0.1 或 0.1d"},
			&cli.StringSliceFlag{Name: "key", Aliases: []string{"k"}, Usage: "参与哈希的列名，按出现顺序；默认全部列"},
			&cli.StringFlag{Name: "schema", Usage: "列定义，如 'user_id:chararray,n:int'"},
			&cli.StringFlag{Name: "format", Usage: "输入格式 csv/jsonl", Value: xconf.InputCSV},
			&cli.StringFlag{Name: "delimiter", Aliases: []string{"d"}, Usage: "CSV 分隔符", Value: ","},
			&cli.BoolFlag{Name: "header", Usage: "CSV 首行为表头（原样输出）"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "并行度；大于 1 时整批读入后并行求值", Value: 1},
			&cli.BoolFlag{Name: "skip-malformed", Usage: "跳过无法解析的记录而不是中止"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "输入文件，- 表示 stdin", Value: "-"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "输出文件，- 表示 stdout", Value: "-"},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			job, err := buildJob(cmd)
			if err != nil {
				return err
			}
			return cmdSample(ctx, cmd, job)
		},
	}
}

func createHashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "打印一组字段的组合哈希、摘要整数、展开值与决策",
		ArgsUsage: "<type:value>...（s/i/l/f/d/b/y/n，如 s:user-42 i:7 n:）",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "salt", Usage: "盐值", Value: xsampling.DefaultSalt},
			&cli.StringFlag{Name: "rate", Aliases: []string{"r"}, Usage: "采样率", Value: "1"},
		},
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdHash(cmd.Root().Writer, cmd.String("salt"), cmd.String("rate"), cmd.Args().Slice())
		},
	}
}

func createSeedCommand() *cli.Command {
	return &cli.Command{
		Name:         "seed",
		Usage:        "打印盐值对应的种子",
		ArgsUsage:    "[salt...]（默认 " + xsampling.DefaultSalt + "）",
		OnUsageError: onUsageError,
		Action: func(_ context.Context, cmd *cli.Command) error {
			salts := cmd.Args().Slice()
			if len(salts) == 0 {
				salts = []string{xsampling.DefaultSalt}
			}
			w := cmd.Root().Writer
			for _, salt := range salts {
				cfg, err := xsampling.NewConfigWithSalt(salt, "0")
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%q\t%d\n", cfg.Salt(), cfg.Seed())
			}
			return nil
		},
	}
}

// buildJob 合并作业文件与命令行参数，命令行显式给出的参数优先
func buildJob(cmd *cli.Command) (*xconf.Job, error) {
	job := xconf.DefaultJob()
	if path := cmd.String("config"); path != "" {
		loaded, err := xconf.Load(path)
		if err != nil {
			if errors.Is(err, xconf.ErrLoadFailed) {
				return nil, err
			}
			return nil, &usageError{err: err}
		}
		job = loaded
	}

	if cmd.IsSet("salt") {
		salts := cmd.StringSlice("salt")
		job.Sampling.Salts = nil
		if len(salts) == 1 {
			job.Sampling.Salt = salts[0]
		} else {
			job.Sampling.Salts = salts
		}
	}
	if cmd.IsSet("mode") {
		job.Sampling.Mode = cmd.String("mode")
	}
	if cmd.IsSet("rate") {
		job.Sampling.Rate = cmd.String("rate")
	}
	if cmd.IsSet("key") {
		job.Sampling.KeyFields = cmd.StringSlice("key")
	}
	if cmd.IsSet("schema") {
		job.Input.Schema = cmd.String("schema")
	}
	if cmd.IsSet("format") {
		job.Input.Format = cmd.String("format")
	}
	if cmd.IsSet("delimiter") {
		job.Input.Delimiter = cmd.String("delimiter")
	}
	if cmd.IsSet("header") {
		job.Input.Header = cmd.Bool("header")
	}
	if cmd.IsSet("workers") {
		job.Workers = cmd.Int("workers")
	}
	root := cmd.Root()
	if root.IsSet("log-level") {
		job.Log.Level = root.String("log-level")
	}
	if root.IsSet("log-format") {
		job.Log.Format = root.String("log-format")
	}
	if root.IsSet("log-file") {
		job.Log.File = root.String("log-file")
	}

	if err := job.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return job, nil
}

func buildLogger(job *xconf.Job, stderr io.Writer) (xlog.Logger, func() error, error) {
	b := xlog.New().
		SetLevelString(job.Log.Level).
		SetFormat(job.Log.Format).
		SetOutput(stderr).
		SetAttrs(slog.String("cmd", "xsamplectl"))
	if job.Log.File != "" {
		b = b.SetRotation(job.Log.File, xlog.RotationOptions{})
	}
	return b.Build()
}

func cmdSample(ctx context.Context, cmd *cli.Command, job *xconf.Job) (err error) {
	root := cmd.Root()
	logger, closeLog, err := buildLogger(job, root.ErrWriter)
	if err != nil {
		return &usageError{err: err}
	}
	defer func() { _ = closeLog() }()
	prev := xlog.Default()
	xlog.SetDefault(logger)
	defer xlog.SetDefault(prev)

	sampler, err := job.Predicate()
	if err != nil {
		if errors.Is(err, xconf.ErrInvalidJob) {
			return &usageError{err: err}
		}
		return err
	}
	for _, w := range job.Warnings() {
		xlog.Warn(ctx, w)
	}
	logSampler(ctx, sampler)

	in, closeIn, err := openInput(cmd.String("input"), root.Reader)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(cmd.String("output"), root.Writer)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	reader, header, err := openReader(job, in)
	if err != nil {
		return err
	}
	schema := readerSchema(reader)
	keys, err := job.KeyIndexes(schema)
	if err != nil {
		return &usageError{err: err}
	}

	observer, err := xmetrics.NewOTelObserver()
	if err != nil {
		return err
	}
	opts := []xfilter.Option{
		xfilter.WithLogger(logger),
		xfilter.WithObserver(observer),
		xfilter.WithSkipMalformed(cmd.Bool("skip-malformed")),
	}
	if keys != nil {
		opts = append(opts, xfilter.WithKeyFields(keys...))
	}
	filter, err := xfilter.New(sampler, opts...)
	if err != nil {
		return err
	}

	w := xrecord.NewWriter(out)
	if header != nil {
		if err := w.WriteRaw(header); err != nil {
			return err
		}
	}

	if job.Workers > 1 {
		err = sampleBatch(ctx, filter, reader, w, job.Workers, cmd.Bool("skip-malformed"))
	} else {
		_, err = filter.Run(ctx, reader, w)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// sampleBatch 整批读入后并行过滤
func sampleBatch(ctx context.Context, f *xfilter.Filter, r xrecord.Reader, w *xrecord.Writer, workers int, skip bool) error {
	var rows []xrecord.Row
	var skipped int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if skip && errors.Is(err, xrecord.ErrMalformedRecord) {
				skipped++
				xlog.Warn(ctx, "record skipped", xlog.Line(row.Line), xlog.Err(err))
				continue
			}
			return err
		}
		rows = append(rows, row)
	}

	kept, _, err := f.ApplyParallel(ctx, rows, workers)
	if err != nil {
		return err
	}
	for _, row := range kept {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if skipped > 0 {
		xlog.Info(ctx, "malformed records skipped while reading", xlog.Skipped(skipped))
	}
	return nil
}

// logSampler 在 debug 级别输出每个盐值的配置
func logSampler(ctx context.Context, p xsampling.Predicate) {
	switch s := p.(type) {
	case *xsampling.KeySampler:
		xlog.Debug(ctx, "sampling configured",
			xlog.Salt(s.Salt()), xlog.Rate(s.Rate()), xlog.Seed(s.Seed()))
	case *xsampling.CompositeSampler:
		xlog.Debug(ctx, "sampling composite", slog.String("mode", s.Mode().String()))
		for _, m := range s.Members() {
			logSampler(ctx, m)
		}
	}
}

// openReader 按作业创建读取器，CSV 带表头时返回表头原文
func openReader(job *xconf.Job, in io.Reader) (xrecord.Reader, []byte, error) {
	schema, err := job.Schema()
	if err != nil {
		return nil, nil, &usageError{err: err}
	}
	if job.Input.Format == xconf.InputJSONL {
		return xrecord.NewJSONLReader(in, schema), nil, nil
	}

	delim, err := job.Delimiter()
	if err != nil {
		return nil, nil, &usageError{err: err}
	}
	r := xrecord.NewCSVReader(in, schema,
		xrecord.WithDelimiter(delim),
		xrecord.WithHeader(job.Input.Header))
	if !job.Input.Header {
		return r, nil, nil
	}
	_, header, err := r.Header()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	return r, header, nil
}

func readerSchema(r xrecord.Reader) *xrecord.Schema {
	switch v := r.(type) {
	case *xrecord.CSVReader:
		return v.Schema()
	case *xrecord.JSONLReader:
		return v.Schema()
	default:
		return nil
	}
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := xfile.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func cmdHash(w io.Writer, salt, rate string, args []string) error {
	cfg, err := xsampling.NewConfigWithSalt(salt, rate)
	if err != nil {
		return &usageError{err: err}
	}
	fields := make([]any, len(args))
	for i, arg := range args {
		v, err := parseTypedValue(arg)
		if err != nil {
			return &usageError{err: fmt.Errorf("argument %d: %w", i+1, err)}
		}
		fields[i] = v
	}

	ks, err := xsampling.NewKeySampler(cfg)
	if err != nil {
		return err
	}
	h, err := xhashcode.Combine(fields)
	if err != nil {
		return &usageError{err: err}
	}
	expanded, err := ks.Expanded(fields...)
	if err != nil {
		return &usageError{err: err}
	}
	fmt.Fprintf(w, "seed\t%d\n", ks.Seed())
	fmt.Fprintf(w, "hash\t%d\n", h)
	fmt.Fprintf(w, "digest\t%d\n", xsampling.Digest(ks.Seed(), h))
	fmt.Fprintf(w, "expanded\t%v\n", expanded)
	fmt.Fprintf(w, "keep\t%t\n", ks.EvaluateHash(h))
	return nil
}

// typeAliases hash 命令的单字母类型前缀
var typeAliases = map[string]xrecord.FieldType{
	"s": xrecord.TypeCharArray,
	"i": xrecord.TypeInt,
	"l": xrecord.TypeLong,
	"f": xrecord.TypeFloat,
	"d": xrecord.TypeDouble,
	"b": xrecord.TypeBoolean,
	"y": xrecord.TypeByteArray,
}

// parseTypedValue 解析 "type:value"，n: 表示 null。
//
// 不含冒号或冒号前不是已知类型名时，整个参数按 chararray 处理，
// 因此 "user:42" 就是字符串 "user:42"。
func parseTypedValue(arg string) (any, error) {
	prefix, value, ok := strings.Cut(arg, ":")
	if !ok {
		return arg, nil
	}
	switch prefix {
	case "n", "null":
		if value != "" {
			return nil, fmt.Errorf("null takes no value, got %q", value)
		}
		return nil, nil
	}

	t, ok := typeAliases[prefix]
	if !ok {
		var err error
		if t, err = xrecord.ParseFieldType(prefix); err != nil {
			return arg, nil
		}
	}
	switch {
	case value == "" && t == xrecord.TypeCharArray:
		return "", nil
	case value == "" && t == xrecord.TypeByteArray:
		return []byte{}, nil
	case value == "":
		return nil, fmt.Errorf("empty %s value", t)
	}
	return t.Parse(value)
}
