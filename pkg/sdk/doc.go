// Package recipedex embeds the recipe search engine in a Go program.
//
// The client trains the TF-IDF vectorizer and the cosine neighbour index from
// a recipe CSV, stores the artifacts in a directory or in Valkey, and answers
// queries in-process, without the HTTP server.
//
//	client, _ := recipedex.New(ctx, recipedex.WithDir("./artifacts"),
//	    recipedex.WithImages("Food Images"),
//	)
//	defer client.Close()
//
//	f, _ := os.Open("Tagged_Food_Recipes.csv")
//	_, _ = client.Train(ctx, f, recipedex.Latin1)
//	_ = client.Load(ctx)
//	results, _ := client.Search(ctx, "chocolate cake", 5)
package recipedex
