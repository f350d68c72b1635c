package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dialogkit/postfilter/internal/bosup"
	"github.com/dialogkit/postfilter/internal/config"
	"github.com/dialogkit/postfilter/internal/fetch"
	"github.com/dialogkit/postfilter/internal/pipeline"
	"github.com/dialogkit/postfilter/internal/server"
)

var inDir, outDir, configPath, manifestPath, serveAddr string
var workers, minLen, maxLen int
var extraClean, bosUpload, nfkc, requireZh bool

func init() {
	flag.StringVar(&inDir, "in", "", "input dir, like: ./toy_data/raw/")
	flag.StringVar(&outDir, "out", "", "output dir, like: ./toy_data/output/")
	flag.StringVar(&configPath, "config", "", "optional ini config path")
	flag.StringVar(&manifestPath, "manifest", "", "fetch manifest json, downloads into -in before the run")
	flag.StringVar(&serveAddr, "serve", "", "run the clean api on this addr, like: :8080")
	flag.IntVar(&workers, "workers", 0, "worker pool size, 0 = config value")
	flag.IntVar(&minLen, "min_len", 0, "min reply length in runes, 0 = config value")
	flag.IntVar(&maxLen, "max_len", 0, "max utterance length in runes, 0 = config value")
	flag.BoolVar(&extraClean, "extra", true, "apply the source-specific clean rules")
	flag.BoolVar(&bosUpload, "bos_upload", false, "push the output tree to bos after the run")
	flag.BoolVar(&nfkc, "nfkc", false, "fold full-width forms before cleaning")
	flag.BoolVar(&requireZh, "require_zh", false, "drop utterances without a cjk rune")
	flag.Parse()
}

func main() {
	start := time.Now()

	cfg := config.Default()
	if len(configPath) > 0 {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	applyFlagOverrides(&cfg)

	if len(manifestPath) > 0 {
		fetch_handler(cfg)
	}

	if len(serveAddr) > 0 {
		serve_handler(cfg)
		return
	}

	if len(inDir) > 0 && len(outDir) > 0 {
		batch_handler(cfg)
	}

	fmt.Printf("total costs:%v(s) \n", time.Since(start).Seconds())
	fmt.Println("++++++++++++++++++++++++++++++++++++++++++++++++")
}

// flags beat the config file, but only when set on the command line
func applyFlagOverrides(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Pool.Workers = workers
		case "min_len":
			cfg.Filter.MinLength = minLen
		case "max_len":
			cfg.Filter.MaxLength = maxLen
		case "extra":
			cfg.Filter.ExtraClean = extraClean
		case "nfkc":
			cfg.Filter.NFKC = nfkc
		case "require_zh":
			cfg.Filter.RequireChinese = requireZh
		}
	})
}

func fetch_handler(cfg config.Config) {
	if len(inDir) == 0 {
		log.Fatal("-manifest needs -in to download into")
	}
	entries, err := fetch.LoadManifest(manifestPath)
	if err != nil {
		log.Fatal(err)
	}
	f := fetch.New(inDir, 100*time.Minute)
	fetched, err := f.FetchAll(entries)
	if err != nil {
		fmt.Printf("fetch finished with errors: %v\n", err)
	}
	fmt.Printf("fetched %v/%v files\n", fetched, len(entries))
}

func batch_handler(cfg config.Config) {
	report, err := pipeline.Run(pipeline.Options{
		InDir:          inDir,
		OutDir:         outDir,
		ExtraClean:     cfg.Filter.ExtraClean,
		RequireChinese: cfg.Filter.RequireChinese,
		NFKC:           cfg.Filter.NFKC,
		MinLength:      cfg.Filter.MinLength,
		MaxLength:      cfg.Filter.MaxLength,
		Workers:        cfg.Pool.Workers,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Summary())

	reportPath, err := pipeline.WriteReport(report, outDir)
	if err != nil {
		fmt.Printf("write report: %v\n", err)
	} else {
		fmt.Printf("report: %v\n", reportPath)
	}

	if bosUpload {
		if len(cfg.BOS.Bucket) == 0 {
			log.Fatal("-bos_upload needs [bos] bucket in the config")
		}
		u, err := bosup.New(cfg.BOS.Endpoint, cfg.BOS.AccessKey, cfg.BOS.SecretKey, cfg.BOS.Bucket, cfg.BOS.Prefix)
		if err != nil {
			log.Fatal(err)
		}
		uploaded, err := u.UploadDir(outDir)
		if err != nil {
			fmt.Printf("upload finished with errors: %v\n", err)
		}
		fmt.Printf("uploaded %v files to %v\n", uploaded, cfg.BOS.Bucket)
	}
}

func serve_handler(cfg config.Config) {
	engine := server.NewRouter(server.Options{
		MinLength:      cfg.Filter.MinLength,
		MaxLength:      cfg.Filter.MaxLength,
		RequireChinese: cfg.Filter.RequireChinese,
		NFKC:           cfg.Filter.NFKC,
	})
	fmt.Printf("serving clean api on %v\n", serveAddr)
	if err := engine.Run(serveAddr); err != nil {
		log.Fatal(err)
	}
}
