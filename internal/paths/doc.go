// Provides platform-appropriate paths for the build tool.
//
// Runtime paths (the cross-process build lock) follow XDG conventions on
// Linux and platform-native conventions on macOS and Windows, under a
// "simpack" subdirectory. Build output paths live inside the target repo's
// own tree.
package paths
