package encryption

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/fwenc/internal/config"
	"github.com/idelchi/fwenc/internal/fileutil"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// cipher is shared by all workers
	cipher *Cipher

	log zerolog.Logger

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration.
// The key is resolved and checked here, before any input file is touched.
func NewProcessor(cfg *config.Config, logger zerolog.Logger) (*Processor, error) {
	key, err := ResolveKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	block, err := NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &Processor{
		cfg:    cfg,
		cipher: block,
		log:    logger,
	}, nil
}

// EncryptFile encrypts inputPath with key and writes the IV and ciphertext to outputPath.
// Keys of the wrong length fail with ErrInvalidKey before the input is opened.
func EncryptFile(inputPath, outputPath string, key []byte) error {
	block, err := NewCipher(key)
	if err != nil {
		return err
	}

	if _, err := transformFile(block.Encrypt, inputPath, outputPath, false); err != nil {
		return fmt.Errorf("encrypting file: %w", err)
	}

	return nil
}

// DecryptFile reverses EncryptFile.
func DecryptFile(inputPath, outputPath string, key []byte) error {
	block, err := NewCipher(key)
	if err != nil {
		return err
	}

	if _, err := transformFile(block.Decrypt, inputPath, outputPath, false); err != nil {
		return fmt.Errorf("decrypting file: %w", err)
	}

	return nil
}

// ProcessFile encrypts or decrypts a single file, depending on the configuration,
// and returns the size of the output.
func (p *Processor) ProcessFile(filename, outPath string) (int64, error) {
	transform, verb := p.cipher.Encrypt, "encrypting"
	if p.cfg.Decrypt {
		transform, verb = p.cipher.Decrypt, "decrypting"
	}

	size, err := transformFile(transform, filename, outPath, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("%s file: %w", verb, err)
	}

	p.log.Debug().
		Str("input", filename).
		Str("output", outPath).
		Int64("size", size).
		Bool("decrypt", p.cfg.Decrypt).
		Msg("processed")

	return size, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files, the number of errors
// and the total size of the outputs.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	p.results = make(chan Result, len(p.cfg.Files))

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	failure := color.New(color.FgRed)

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				failure.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error) //nolint:errcheck

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if !p.cfg.Delete || sameFile(result.Input, result.Output) {
				continue
			}

			if err := os.Remove(result.Input); err != nil {
				failure.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err) //nolint:errcheck
			} else if !p.cfg.Quiet {
				fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			if sameFile(file, outPath) {
				err := fmt.Errorf("%w: %q, check --encrypt-ext and --decrypt-ext", ErrOutputIsInput, file)
				p.results <- Result{Input: file, Error: err}

				return err
			}

			size, err := p.ProcessFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// transformFile reads filename whole, applies transform and atomically writes the result to outPath.
// Every failure leaves outPath untouched.
func transformFile(
	transform func([]byte) ([]byte, error),
	filename, outPath string,
	preserveTimestamps bool,
) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, fmt.Errorf("%w: preparing atomic write: %w", ErrIO, err)
	}

	defer tc.CleanupOnError(&err)

	input, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("%w: reading input: %w", ErrIO, err)
	}

	output, err := transform(input)
	if err != nil {
		return 0, err
	}

	if _, err := tc.TmpFile.Write(output); err != nil {
		return 0, fmt.Errorf("%w: writing output: %w", ErrIO, err)
	}

	size, err = tc.Commit(preserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return size, nil
}

// sameFile reports whether two paths name the same file, either literally or on disk.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)

	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// OutputPath generates the batch output path for filename
// from the configured suffixes for encryption/decryption.
func OutputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}
