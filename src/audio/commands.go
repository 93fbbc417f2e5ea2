package audio

import (
	"fmt"
	"log"
	"math"
	"strconv"
)

// ----- Commands ----- //

// Update applies one control message, e.g. ["table_size", "2048"]. Rejected
// messages return an error and leave the engine unchanged.
func (e *Engine) Update(command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: empty command", ErrInvalidArgument)
	}
	switch command[0] {
	case "bang", "capture":
		if err := expectArgs(command, 0); err != nil {
			return err
		}
		e.StartCapture()
		log.Println("recording...")
	case "table_size":
		f, err := floatArg(command)
		if err != nil {
			return err
		}
		size, err := tableSizeFromFloat(f)
		if err != nil {
			return err
		}
		if err := e.Resize(size); err != nil {
			return err
		}
		log.Printf("table_size: %d\n", size)
	case "table_interp":
		if err := expectArgs(command, 1); err != nil {
			return err
		}
		mode, err := ParseInterpolation(command[1])
		if err != nil {
			return err
		}
		if err := e.SetInterpolation(mode); err != nil {
			return err
		}
		log.Printf("table_interp: %v\n", mode)
	case "env_atk_ms":
		f, err := floatArg(command)
		if err != nil {
			return err
		}
		if err := e.SetAttackMs(f); err != nil {
			return err
		}
		log.Printf("env_atk_ms: %f\n", f)
	case "env_dcy_ms":
		f, err := floatArg(command)
		if err != nil {
			return err
		}
		if err := e.SetDecayMs(f); err != nil {
			return err
		}
		log.Printf("env_dcy_ms: %f\n", f)
	case "env_enable":
		if err := expectArgs(command, 0); err != nil {
			return err
		}
		e.SetEnvelope(true)
		log.Println("envelope follower enabled")
	case "env_disable":
		if err := expectArgs(command, 0); err != nil {
			return err
		}
		e.SetEnvelope(false)
		log.Println("envelope follower disabled")
	case "sample_rate":
		f, err := floatArg(command)
		if err != nil {
			return err
		}
		if err := e.SetSampleRate(f); err != nil {
			return err
		}
		log.Printf("sample_rate: %f\n", f)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownCommand, command[0])
	}
	return nil
}

func expectArgs(command []string, n int) error {
	if len(command)-1 != n {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrInvalidArgument, command[0], n, len(command)-1)
	}
	return nil
}

func floatArg(command []string) (float64, error) {
	if err := expectArgs(command, 1); err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(command[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, command[0], err)
	}
	return value, nil
}

func tableSizeFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || f < 1 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSize, f)
	}
	if f > MaxTableSize {
		return 0, fmt.Errorf("%w: %v > %d", ErrTableTooLarge, f, MaxTableSize)
	}
	return int(f), nil
}
