package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/langdetect/internal/common"
	"github.com/MeKo-Tech/langdetect/internal/langdetect"
	"github.com/MeKo-Tech/langdetect/internal/profiles"
)

func main() {
	var (
		profilesDir = flag.String("profiles", "data/profiles", "Directory containing language profile JSON files")
		corpusDir   = flag.String("corpus", "", "Directory of sample text files, named <lang>.txt, to benchmark against")
		iterations  = flag.Int("iterations", 3, "Number of iterations per language")
		alpha       = flag.Float64("alpha", langdetect.AlphaDefault, "detector smoothing parameter")
		outputFile  = flag.String("output", "", "Output file for results (optional)")
		verbose     = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	fmt.Println("langdetect profile benchmark")
	fmt.Println("============================")

	if _, err := os.Stat(*profilesDir); os.IsNotExist(err) {
		log.Fatalf("Profiles directory not found: %s", *profilesDir)
	}

	profs, err := profiles.LoadDir(*profilesDir)
	if err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}

	factory := langdetect.NewFactory()
	if err := factory.LoadProfiles(profs); err != nil {
		log.Fatalf("Failed to index profiles: %v", err)
	}

	corpus := loadCorpus(*corpusDir, factory.LoadedLanguages(), *verbose)
	if len(corpus) == 0 {
		log.Fatalf("No sample text available: pass -corpus pointing at <lang>.txt files")
	}

	results := runBenchmark(factory, corpus, *iterations, *alpha)

	for _, r := range results {
		fmt.Println(r.String())
	}

	if *outputFile != "" {
		if err := saveResultsToFile(*outputFile, results); err != nil {
			log.Printf("Failed to save results to file: %v", err)
		} else {
			fmt.Printf("Results saved to: %s\n", *outputFile)
		}
	}
}

type langSample struct {
	lang string
	text string
}

func loadCorpus(dir string, loadedLanguages []string, verbose bool) []langSample {
	var samples []langSample
	if dir == "" {
		return samples
	}
	for _, lang := range loadedLanguages {
		path := filepath.Join(dir, lang+".txt")
		data, err := os.ReadFile(path) //nolint:gosec // G304: operator-controlled benchmark corpus path
		if err != nil {
			if verbose {
				fmt.Printf("skipping %s: %v\n", path, err)
			}
			continue
		}
		samples = append(samples, langSample{lang: lang, text: string(data)})
	}
	return samples
}

// benchResult mirrors common.BenchmarkResult but also tracks detection accuracy.
type benchResult struct {
	common.BenchmarkResult
	Lang    string
	Correct int
}

func (r benchResult) String() string {
	base := r.BenchmarkResult.String()
	return fmt.Sprintf("%s (lang=%s, correct=%d/%d)", base, r.Lang, r.Correct, r.Iterations)
}

func runBenchmark(factory *langdetect.Factory, corpus []langSample, iterations int, alpha float64) []benchResult {
	results := make([]benchResult, 0, len(corpus))
	for _, sample := range corpus {
		timer := common.NewNamedTimer(sample.lang)
		memBefore := common.GetMemoryStats()

		correct := 0
		for i := 0; i < iterations; i++ {
			det, err := factory.NewDetectorWithAlpha(alpha)
			if err != nil {
				results = append(results, benchResult{
					BenchmarkResult: common.BenchmarkResult{Name: sample.lang, Error: err},
					Lang:            sample.lang,
				})
				continue
			}
			if err := det.Append(sample.text); err != nil {
				continue
			}
			lang, err := det.Detect()
			if err == nil && lang == sample.lang {
				correct++
			}
		}

		duration := timer.Stop()
		memAfter := common.GetMemoryStats()

		results = append(results, benchResult{
			BenchmarkResult: common.BenchmarkResult{
				Name:         sample.lang,
				Duration:     duration,
				Iterations:   iterations,
				MemoryBefore: memBefore,
				MemoryAfter:  memAfter,
			},
			Lang:    sample.lang,
			Correct: correct,
		})
	}
	return results
}

func saveResultsToFile(filename string, results []benchResult) error {
	file, err := os.Create(filename) //nolint:gosec // G304: operator-supplied output path
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, _ = fmt.Fprintln(file, "langdetect profile benchmark results")
	_, _ = fmt.Fprintln(file, "======================================")
	_, _ = fmt.Fprintln(file)

	for _, result := range results {
		_, _ = fmt.Fprintf(file, "%s\n", result.String())
	}

	_, _ = fmt.Fprintln(file)
	_, _ = fmt.Fprintln(file, "CSV Format:")
	_, _ = fmt.Fprintln(file, "Language,Iterations,Correct,Duration_ms")

	for _, result := range results {
		ms := float64(result.Duration.Nanoseconds()) / 1e6
		_, _ = fmt.Fprintf(file, "%s,%d,%d,%.2f\n",
			strings.TrimSpace(result.Lang), result.Iterations, result.Correct, ms)
	}

	return nil
}
