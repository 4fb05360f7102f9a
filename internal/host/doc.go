// Package host binds the picker to the machine it runs on.
//
// It provides the file-selection surface (Dialog and Input), the File
// handle a surface hands back, and ReadDataURL, which turns a File's bytes
// into a base64 data URL. NativeDialog shows the operating system chooser;
// PathDialog returns preselected paths and is used where no desktop is
// available.
package host
