// Package gen drives a generation run: it resolves target source files,
// applies their rewriters in parallel and writes, checks or previews the
// result.
//
// Example:
//
//	cfg, err := gen.NewConfig(
//		gen.WithRoot("paper-api/src/main/java"),
//		gen.WithVersion("1.21.4"),
//		gen.WithTargets(gen.Target{
//			File:      "org/bukkit/Material.java",
//			Rewriters: []rewriter.Rewriter{blocks, items},
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	_, err = gen.Generate(ctx, cfg)
package gen
