/*
Package arbor learns decision trees from examples with discrete attributes
using the ID3 algorithm, prunes them against validation examples and
estimates their accuracy with train/test splits, k-fold cross-validation
and learning curves.

Examples and their metadata are provided by a dataset.Dataset. Learned trees
are tree.Subtree values that can be persisted with the tree/json and
tree/redisstore packages.
*/
package arbor
