// Package seed fills a library with YAML fixtures.
//
//	f, err := seed.Load("fixtures.yaml")
//	if err != nil {
//		return err
//	}
//	_, err = seed.Apply(ctx, svc, f, seed.NewSequence(seed.DefaultPrefix, 1001), log)
package seed
