// Package binary downloads, verifies, and manages the tailwindcss
// standalone executable that this wrapper runs.
//
// The binary for a given (target, version) pair lives at a deterministic
// path under the install root and is replaced wholesale on reinstall,
// never patched in place. Downloads go straight to the release server
// over HTTPS with proxy support taken from the environment; a transport
// failure that looks address-family related is retried exactly once with
// the opposite IP family. Optional integrity verification (pinned SHA256
// digest or detached PGP signature) runs before anything reaches the
// final path.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.ManagerConfig{
//	    Config:   cfg,
//	    Platform: platformInfo,
//	    Logger:   logger,
//	})
//	if err != nil {
//	    return err
//	}
//
//	path, err := mgr.EnsureInstalled(ctx, "default")
//	if err != nil {
//	    return err
//	}
package binary
